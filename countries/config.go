/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package countries

import (
	"errors"
	"time"

	"github.com/acronis/go-countries/config"
	"github.com/acronis/go-countries/httpclient"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://restcountries.com/v2"

	DefaultUserAgent = "go-countries"

	DefaultMaxResponseBodySize = 1024 * 1024

	DefaultCacheMaxEntries = 1000

	DefaultCacheTTL = time.Hour
)

const cfgDefaultKeyPrefix = "countries"

// configuration properties
const (
	cfgKeyBaseURL             = "baseUrl"
	cfgKeyUserAgent           = "userAgent"
	cfgKeyMaxResponseBodySize = "maxResponseBodySize"
	cfgKeyCacheEnabled        = "cache.enabled"
	cfgKeyCacheMaxEntries     = "cache.maxEntries"
	cfgKeyCacheDefaultTTL     = "cache.defaultTtl"

	httpKeyPrefix = "http"
)

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// CacheConfig represents configuration options for the currency cache.
type CacheConfig struct {
	// Enabled is a flag that enables caching of currency lookups.
	Enabled bool `mapstructure:"enabled"`

	// MaxEntries is the maximum number of entries the cache may hold before evicting the oldest ones.
	MaxEntries int `mapstructure:"maxEntries"`

	// DefaultTTL is the time after which a cache entry is treated as missing.
	// Zero means entries don't expire.
	DefaultTTL time.Duration `mapstructure:"defaultTtl"`
}

// Config represents options for the REST Countries client configuration.
type Config struct {
	// BaseURL is a base URL of the upstream API.
	BaseURL string `mapstructure:"baseUrl"`

	// UserAgent is sent in the User-Agent header of each request.
	UserAgent string `mapstructure:"userAgent"`

	// MaxResponseBodySize limits the size of the read response body.
	MaxResponseBodySize config.BytesCount `mapstructure:"maxResponseBodySize"`

	// Cache is a configuration for the currency cache.
	Cache CacheConfig `mapstructure:"cache"`

	// HTTP is a configuration for the underlying HTTP client.
	HTTP httpclient.Config `mapstructure:"http"`

	// keyPrefix is a prefix for configuration parameters.
	keyPrefix string
}

// NewConfig creates a new instance of the Config.
func NewConfig() *Config {
	return NewConfigWithKeyPrefix(cfgDefaultKeyPrefix)
}

// NewConfigWithKeyPrefix creates a new instance of the Config.
// Allows specifying key prefix which will be used for parsing configuration parameters.
func NewConfigWithKeyPrefix(keyPrefix string) *Config {
	return &Config{keyPrefix: keyPrefix}
}

// NewDefaultConfig creates a new instance of the Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		keyPrefix:           cfgDefaultKeyPrefix,
		BaseURL:             DefaultBaseURL,
		UserAgent:           DefaultUserAgent,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: DefaultCacheMaxEntries,
			DefaultTTL: DefaultCacheTTL,
		},
		HTTP: httpclient.Config{
			Timeout: httpclient.DefaultClientWaitTimeout,
		},
	}
}

// KeyPrefix returns a key prefix with which all configuration parameters should be presented.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults is part of config interface implementation.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyBaseURL, DefaultBaseURL)
	dp.SetDefault(cfgKeyUserAgent, DefaultUserAgent)
	dp.SetDefault(cfgKeyMaxResponseBodySize, config.BytesCount(DefaultMaxResponseBodySize).String())
	dp.SetDefault(cfgKeyCacheEnabled, true)
	dp.SetDefault(cfgKeyCacheMaxEntries, DefaultCacheMaxEntries)
	dp.SetDefault(cfgKeyCacheDefaultTTL, DefaultCacheTTL.String())
	c.HTTP.SetProviderDefaults(config.NewKeyPrefixedDataProvider(dp, httpKeyPrefix))
}

// Set is part of config interface implementation.
func (c *Config) Set(dp config.DataProvider) error {
	var err error

	if c.BaseURL, err = dp.GetString(cfgKeyBaseURL); err != nil {
		return err
	}
	if c.BaseURL == "" {
		return dp.WrapKeyErr(cfgKeyBaseURL, errors.New("cannot be empty"))
	}

	if c.UserAgent, err = dp.GetString(cfgKeyUserAgent); err != nil {
		return err
	}

	if c.MaxResponseBodySize, err = dp.GetBytesCount(cfgKeyMaxResponseBodySize); err != nil {
		return err
	}
	if c.MaxResponseBodySize == 0 {
		return dp.WrapKeyErr(cfgKeyMaxResponseBodySize, errors.New("must be greater than 0"))
	}

	if err = c.setCacheConfig(dp); err != nil {
		return err
	}

	return c.HTTP.Set(config.NewKeyPrefixedDataProvider(dp, httpKeyPrefix))
}

func (c *Config) setCacheConfig(dp config.DataProvider) (err error) {
	if c.Cache.Enabled, err = dp.GetBool(cfgKeyCacheEnabled); err != nil {
		return err
	}
	if !c.Cache.Enabled {
		return nil
	}

	if c.Cache.MaxEntries, err = dp.GetInt(cfgKeyCacheMaxEntries); err != nil {
		return err
	}
	if c.Cache.MaxEntries <= 0 {
		return dp.WrapKeyErr(cfgKeyCacheMaxEntries, errors.New("must be greater than 0"))
	}

	if c.Cache.DefaultTTL, err = dp.GetDuration(cfgKeyCacheDefaultTTL); err != nil {
		return err
	}
	if c.Cache.DefaultTTL < 0 {
		return dp.WrapKeyErr(cfgKeyCacheDefaultTTL, errors.New("can not be negative"))
	}

	return nil
}
