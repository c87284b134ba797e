/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAppConfig struct {
	Server struct {
		Address string
	}
}

func (c *testAppConfig) SetProviderDefaults(dp DataProvider) {
	dp.SetDefault("server.addr", ":80")
}

func (c *testAppConfig) Set(dp DataProvider) error {
	var err error
	c.Server.Address, err = dp.GetString("server.addr")
	return err
}

type testClientConfig struct {
	BaseURL string
}

func (c *testClientConfig) KeyPrefix() string {
	return "client"
}

func (c *testClientConfig) SetProviderDefaults(_ DataProvider) {}

func (c *testClientConfig) Set(dp DataProvider) error {
	var err error
	c.BaseURL, err = dp.GetString("baseUrl")
	return err
}

func TestLoader_LoadFromReader(t *testing.T) {
	t.Run("load config, use defaults", func(t *testing.T) {
		appCfg := &testAppConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(bytes.NewBufferString(`{}`), DataTypeJSON, appCfg)
		require.NoError(t, err)
		require.Equal(t, ":80", appCfg.Server.Address)
	})

	t.Run("load config", func(t *testing.T) {
		appCfg := &testAppConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(`{"server":{"addr":":777"}}`), DataTypeJSON, appCfg)
		require.NoError(t, err)
		require.Equal(t, ":777", appCfg.Server.Address)
	})

	t.Run("load config, use key prefix", func(t *testing.T) {
		clientCfg := &testClientConfig{}
		yamlData := `
client:
  baseUrl: https://example.com
`
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(yamlData), DataTypeYAML, clientCfg)
		require.NoError(t, err)
		require.Equal(t, "https://example.com", clientCfg.BaseURL)
	})

	t.Run("load multiple configs", func(t *testing.T) {
		appCfg := &testAppConfig{}
		clientCfg := &testClientConfig{}
		yamlData := `
server:
  addr: ":8080"
client:
  baseUrl: https://example.com
`
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(yamlData), DataTypeYAML, appCfg, clientCfg)
		require.NoError(t, err)
		require.Equal(t, ":8080", appCfg.Server.Address)
		require.Equal(t, "https://example.com", clientCfg.BaseURL)
	})
}

func TestLoader_LoadFromFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  addr: \":9090\"\n"), 0600))

	appCfg := &testAppConfig{}
	err := NewLoader(NewViperAdapter()).LoadFromFile(cfgPath, DataTypeYAML, appCfg)
	require.NoError(t, err)
	require.Equal(t, ":9090", appCfg.Server.Address)
}

func TestDefaultLoaderEnvVars(t *testing.T) {
	t.Setenv("MYAPP_SERVER_ADDR", ":6060")

	appCfg := &testAppConfig{}
	err := NewDefaultLoader("myapp").LoadFromReader(bytes.NewBufferString(`{}`), DataTypeJSON, appCfg)
	require.NoError(t, err)
	require.Equal(t, ":6060", appCfg.Server.Address)
}
