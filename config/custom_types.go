/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
)

// BytesCount is a number of bytes that may be parsed from a human-readable string like "256K" or "1M".
type BytesCount uint64

// String implements fmt.Stringer.
func (b BytesCount) String() string {
	return bytefmt.ByteSize(uint64(b))
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It allows using BytesCount in configuration structs parsed with json.Unmarshal/yaml.Unmarshal directly.
func (b *BytesCount) UnmarshalText(text []byte) error {
	num, err := bytefmt.ToBytes(string(text))
	if err != nil {
		return fmt.Errorf("invalid bytes count format: %q", string(text))
	}
	*b = BytesCount(num)
	return nil
}
