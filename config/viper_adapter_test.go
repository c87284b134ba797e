/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestViperAdapter(t *testing.T, yamlData string) *ViperAdapter {
	t.Helper()
	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(yamlData), DataTypeYAML))
	return va
}

func TestViperAdapterGetters(t *testing.T) {
	va := newTestViperAdapter(t, `
boolVal: true
intVal: 42
strVal: hello
durationVal: 1m30s
sizeVal: 256K
rawSizeVal: 1024
modeVal: failed
`)

	t.Run("get bool", func(t *testing.T) {
		gotBool, err := va.GetBool("boolVal")
		require.NoError(t, err)
		require.True(t, gotBool)

		_, err = va.GetBool("strVal")
		require.Error(t, err)
		require.Contains(t, err.Error(), "strVal")
	})

	t.Run("get int", func(t *testing.T) {
		gotInt, err := va.GetInt("intVal")
		require.NoError(t, err)
		require.Equal(t, 42, gotInt)

		_, err = va.GetInt("strVal")
		require.Error(t, err)
	})

	t.Run("get string", func(t *testing.T) {
		gotStr, err := va.GetString("strVal")
		require.NoError(t, err)
		require.Equal(t, "hello", gotStr)
	})

	t.Run("get string from set", func(t *testing.T) {
		gotStr, err := va.GetStringFromSet("modeVal", []string{"none", "all", "failed"}, false)
		require.NoError(t, err)
		require.Equal(t, "failed", gotStr)

		gotStr, err = va.GetStringFromSet("modeVal", []string{"FAILED"}, true)
		require.NoError(t, err)
		require.Equal(t, "failed", gotStr)

		_, err = va.GetStringFromSet("modeVal", []string{"none", "all"}, false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "modeVal")
	})

	t.Run("get duration", func(t *testing.T) {
		gotDuration, err := va.GetDuration("durationVal")
		require.NoError(t, err)
		require.Equal(t, time.Minute+time.Second*30, gotDuration)

		gotDuration, err = va.GetDuration("missingVal")
		require.NoError(t, err)
		require.Equal(t, time.Duration(0), gotDuration)

		_, err = va.GetDuration("strVal")
		require.Error(t, err)
	})

	t.Run("get bytes count", func(t *testing.T) {
		gotSize, err := va.GetBytesCount("sizeVal")
		require.NoError(t, err)
		require.Equal(t, BytesCount(256*1024), gotSize)

		gotSize, err = va.GetBytesCount("rawSizeVal")
		require.NoError(t, err)
		require.Equal(t, BytesCount(1024), gotSize)

		gotSize, err = va.GetBytesCount("missingVal")
		require.NoError(t, err)
		require.Equal(t, BytesCount(0), gotSize)

		_, err = va.GetBytesCount("strVal")
		require.Error(t, err)
		require.Contains(t, err.Error(), "strVal")
	})
}

func TestViperAdapterSetAndIsSet(t *testing.T) {
	va := NewViperAdapter()
	require.False(t, va.IsSet("some.key"))

	va.Set("some.key", "value")
	require.True(t, va.IsSet("some.key"))
	gotStr, err := va.GetString("some.key")
	require.NoError(t, err)
	require.Equal(t, "value", gotStr)

	va.SetDefault("other.key", 7)
	gotInt, err := va.GetInt("other.key")
	require.NoError(t, err)
	require.Equal(t, 7, gotInt)
}

func TestViperAdapterUnmarshalKey(t *testing.T) {
	va := newTestViperAdapter(t, `
cache:
  maxEntries: 100
  defaultTtl: 5m
`)

	var cacheCfg struct {
		MaxEntries int           `mapstructure:"maxEntries"`
		DefaultTTL time.Duration `mapstructure:"defaultTtl"`
	}
	require.NoError(t, va.UnmarshalKey("cache", &cacheCfg))
	require.Equal(t, 100, cacheCfg.MaxEntries)
	require.Equal(t, time.Minute*5, cacheCfg.DefaultTTL)
}
