/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"io"
	"time"
)

// KeyPrefixedDataProvider is a DataProvider implementation
// that gets configuration data from the wrapped DataProvider prepending a key prefix in all operations.
type KeyPrefixedDataProvider struct {
	delegate  DataProvider
	keyPrefix string
}

var _ DataProvider = (*KeyPrefixedDataProvider)(nil)

// NewKeyPrefixedDataProvider creates a new KeyPrefixedDataProvider.
func NewKeyPrefixedDataProvider(delegate DataProvider, keyPrefix string) *KeyPrefixedDataProvider {
	return &KeyPrefixedDataProvider{delegate, keyPrefix}
}

func (kpdp *KeyPrefixedDataProvider) makeFullKey(key string) string {
	if kpdp.keyPrefix == "" {
		return key
	}
	return kpdp.keyPrefix + "." + key
}

// UseEnvVars enables the ability to use environment variables for configuration parameters.
func (kpdp *KeyPrefixedDataProvider) UseEnvVars(prefix string) {
	kpdp.delegate.UseEnvVars(prefix)
}

// Set sets the value for the key in the override register.
func (kpdp *KeyPrefixedDataProvider) Set(key string, value interface{}) {
	kpdp.delegate.Set(kpdp.makeFullKey(key), value)
}

// SetDefault sets the default value for this key.
func (kpdp *KeyPrefixedDataProvider) SetDefault(key string, value interface{}) {
	kpdp.delegate.SetDefault(kpdp.makeFullKey(key), value)
}

// SetFromFile specifies that discovering and loading configuration data will be performed from file.
func (kpdp *KeyPrefixedDataProvider) SetFromFile(path string, dataType DataType) error {
	return kpdp.delegate.SetFromFile(path, dataType)
}

// SetFromReader specifies that discovering and loading configuration data will be performed from reader.
func (kpdp *KeyPrefixedDataProvider) SetFromReader(reader io.Reader, dataType DataType) error {
	return kpdp.delegate.SetFromReader(reader, dataType)
}

// IsSet checks to see if the key has been set in any of the data locations.
func (kpdp *KeyPrefixedDataProvider) IsSet(key string) bool {
	return kpdp.delegate.IsSet(kpdp.makeFullKey(key))
}

// Get retrieves any value given the key to use.
func (kpdp *KeyPrefixedDataProvider) Get(key string) interface{} {
	return kpdp.delegate.Get(kpdp.makeFullKey(key))
}

// GetBool tries to retrieve the value associated with the key as a bool.
func (kpdp *KeyPrefixedDataProvider) GetBool(key string) (bool, error) {
	return kpdp.delegate.GetBool(kpdp.makeFullKey(key))
}

// GetInt tries to retrieve the value associated with the key as an integer.
func (kpdp *KeyPrefixedDataProvider) GetInt(key string) (int, error) {
	return kpdp.delegate.GetInt(kpdp.makeFullKey(key))
}

// GetString tries to retrieve the value associated with the key as a string.
func (kpdp *KeyPrefixedDataProvider) GetString(key string) (string, error) {
	return kpdp.delegate.GetString(kpdp.makeFullKey(key))
}

// GetStringFromSet tries to retrieve the value associated with the key as a string from the specified set.
func (kpdp *KeyPrefixedDataProvider) GetStringFromSet(key string, set []string, ignoreCase bool) (string, error) {
	return kpdp.delegate.GetStringFromSet(kpdp.makeFullKey(key), set, ignoreCase)
}

// GetDuration tries to retrieve the value associated with the key as a duration.
func (kpdp *KeyPrefixedDataProvider) GetDuration(key string) (time.Duration, error) {
	return kpdp.delegate.GetDuration(kpdp.makeFullKey(key))
}

// GetBytesCount tries to retrieve the value associated with the key as a size in bytes.
func (kpdp *KeyPrefixedDataProvider) GetBytesCount(key string) (BytesCount, error) {
	return kpdp.delegate.GetBytesCount(kpdp.makeFullKey(key))
}

// UnmarshalKey takes a single key and unmarshals it into a Struct.
func (kpdp *KeyPrefixedDataProvider) UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error {
	return kpdp.delegate.UnmarshalKey(kpdp.makeFullKey(key), rawVal, opts...)
}

// WrapKeyErr wraps error adding information about a key where this error occurs.
func (kpdp *KeyPrefixedDataProvider) WrapKeyErr(key string, err error) error {
	return WrapKeyErr(kpdp.makeFullKey(key), err)
}
