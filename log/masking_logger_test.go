/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturedEntry struct {
	Level  Level
	Text   string
	Fields []Field
}

// capturingLogger is a minimal FieldLogger that remembers everything it logs.
type capturingLogger struct {
	entries []capturedEntry
}

func (l *capturingLogger) With(...Field) FieldLogger { return l }

func (l *capturingLogger) log(level Level, text string, fs []Field) {
	l.entries = append(l.entries, capturedEntry{level, text, fs})
}

func (l *capturingLogger) Debug(text string, fs ...Field) { l.log(LevelDebug, text, fs) }
func (l *capturingLogger) Info(text string, fs ...Field)  { l.log(LevelInfo, text, fs) }
func (l *capturingLogger) Warn(text string, fs ...Field)  { l.log(LevelWarn, text, fs) }
func (l *capturingLogger) Error(text string, fs ...Field) { l.log(LevelError, text, fs) }

func (l *capturingLogger) Debugf(string, ...interface{}) {}
func (l *capturingLogger) Infof(string, ...interface{})  {}
func (l *capturingLogger) Warnf(string, ...interface{})  {}
func (l *capturingLogger) Errorf(string, ...interface{}) {}

func (l *capturingLogger) AtLevel(level Level, fn func(LogFunc)) {
	fn(func(text string, fs ...Field) { l.log(level, text, fs) })
}

func (l *capturingLogger) WithLevel(Level) FieldLogger { return l }

func TestMaskingLogger(t *testing.T) {
	t.Run("message is masked", func(t *testing.T) {
		delegate := &capturingLogger{}
		logger := NewMaskingLogger(delegate, NewMasker(DefaultMasks))

		logger.Info(`got request body {"password": "qwerty123"}`)
		require.Len(t, delegate.entries, 1)
		require.Equal(t, `got request body {"password": "***"}`, delegate.entries[0].Text)
	})

	t.Run("string field is masked", func(t *testing.T) {
		delegate := &capturingLogger{}
		logger := NewMaskingLogger(delegate, NewMasker(DefaultMasks))

		logger.Error("request failed",
			String("uri", "https://example.com/lookup?api_key=12345"),
			String("method", "GET"))
		require.Len(t, delegate.entries, 1)

		fields := delegate.entries[0].Fields
		require.Len(t, fields, 2)
		require.Equal(t, "https://example.com/lookup?api_key=***", string(fields[0].Bytes))
		require.Equal(t, "GET", string(fields[1].Bytes))
	})

	t.Run("error field is masked", func(t *testing.T) {
		delegate := &capturingLogger{}
		logger := NewMaskingLogger(delegate, NewMasker(DefaultMasks))

		logger.Error("request failed",
			Error(errors.New(`dial failed: https://example.com?access_token=abc failed`)))
		require.Len(t, delegate.entries, 1)

		fields := delegate.entries[0].Fields
		require.Len(t, fields, 1)
		gotErr, ok := fields[0].Any.(error)
		require.True(t, ok)
		require.NotContains(t, gotErr.Error(), "abc")
	})

	t.Run("fields without secrets are passed as is", func(t *testing.T) {
		delegate := &capturingLogger{}
		logger := NewMaskingLogger(delegate, NewMasker(DefaultMasks))

		logger.Info("all good", String("status", "ok"), Int("code", 200))
		require.Len(t, delegate.entries, 1)
		require.Equal(t, "all good", delegate.entries[0].Text)
	})

	t.Run("at level masks bound log func", func(t *testing.T) {
		delegate := &capturingLogger{}
		logger := NewMaskingLogger(delegate, NewMasker(DefaultMasks))

		logger.AtLevel(LevelDebug, func(logFn LogFunc) {
			logFn(`{"client_secret": "s3cr3t"}`)
		})
		require.Len(t, delegate.entries, 1)
		require.Equal(t, `{"client_secret": "***"}`, delegate.entries[0].Text)
	})
}
