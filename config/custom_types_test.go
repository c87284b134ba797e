/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBytesCountString(t *testing.T) {
	require.Equal(t, "1M", BytesCount(1024*1024).String())
	require.Equal(t, "256K", BytesCount(256*1024).String())
}

func TestBytesCountUnmarshalText(t *testing.T) {
	var size BytesCount
	require.NoError(t, size.UnmarshalText([]byte("4M")))
	require.Equal(t, BytesCount(4*1024*1024), size)

	require.Error(t, size.UnmarshalText([]byte("four megabytes")))
}

func TestBytesCountUnmarshalYAML(t *testing.T) {
	var cfg struct {
		MaxSize BytesCount `yaml:"maxSize"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("maxSize: 512K"), &cfg))
	require.Equal(t, BytesCount(512*1024), cfg.MaxSize)
}
