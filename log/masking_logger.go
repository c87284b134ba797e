/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"errors"
	"fmt"

	"github.com/ssgreg/logf"
)

// MaskingLogger is a logger that masks secrets in log messages and fields.
// Use it to make sure secrets are not leaked in logs:
// - If you dump HTTP requests and responses in debug mode.
// - If a secret is passed via URL (like &api_key=<secret>), network connectivity error will leak it.
type MaskingLogger struct {
	log    FieldLogger
	masker StringMasker
}

// StringMasker masks secrets in a string.
type StringMasker interface {
	Mask(s string) string
}

// NewMaskingLogger creates a new FieldLogger that masks secrets before delegating to the passed logger.
func NewMaskingLogger(l FieldLogger, m StringMasker) FieldLogger {
	return MaskingLogger{l, m}
}

// With returns a new logger with the given additional fields.
func (l MaskingLogger) With(fs ...Field) FieldLogger {
	return MaskingLogger{l.log.With(l.maskFields(fs)...), l.masker}
}

// Debug logs a message at "debug" level.
func (l MaskingLogger) Debug(text string, fs ...Field) {
	l.log.Debug(l.masker.Mask(text), l.maskFields(fs)...)
}

// Info logs a message at "info" level.
func (l MaskingLogger) Info(text string, fs ...Field) {
	l.log.Info(l.masker.Mask(text), l.maskFields(fs)...)
}

// Warn logs a message at "warn" level.
func (l MaskingLogger) Warn(text string, fs ...Field) {
	l.log.Warn(l.masker.Mask(text), l.maskFields(fs)...)
}

// Error logs a message at "error" level.
func (l MaskingLogger) Error(text string, fs ...Field) {
	l.log.Error(l.masker.Mask(text), l.maskFields(fs)...)
}

// Debugf logs a formatted message at "debug" level.
func (l MaskingLogger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at "info" level.
func (l MaskingLogger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at "warn" level.
func (l MaskingLogger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at "error" level.
func (l MaskingLogger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// AtLevel calls the given fn if logging a message at the specified level
// is enabled, passing a LogFunc with the bound level.
func (l MaskingLogger) AtLevel(level Level, fn func(logFunc LogFunc)) {
	l.log.AtLevel(level, func(logFunc LogFunc) {
		fn(func(msg string, fs ...Field) {
			logFunc(l.masker.Mask(msg), l.maskFields(fs)...)
		})
	})
}

// WithLevel returns a new logger with additional level check.
// All log messages below ("debug" is a minimal level, "error" - maximal)
// the given AND previously set level will be ignored (i.e. it makes sense to only increase level).
func (l MaskingLogger) WithLevel(level Level) FieldLogger {
	return MaskingLogger{l.log.WithLevel(level), l.masker}
}

// maskFields masks secrets in string and error log fields.
func (l MaskingLogger) maskFields(fields []Field) []Field {
	var newFields []Field
	for i, field := range fields {
		switch field.Type {
		case logf.FieldTypeBytesToString:
			s := string(field.Bytes)
			masked := l.masker.Mask(s)
			if masked != s {
				if newFields == nil {
					newFields = append([]Field{}, fields...)
				}
				newFields[i] = String(field.Key, masked)
			}
		case logf.FieldTypeError:
			if field.Any == nil {
				continue
			}
			err := field.Any.(error)
			s := err.Error()
			masked := l.masker.Mask(s)
			if masked != s {
				if newFields == nil {
					newFields = append([]Field{}, fields...)
				}
				newFields[i] = NamedError(field.Key, errors.New(masked))
			}
		}
	}

	if newFields == nil {
		return fields
	}
	return newFields
}
