// Package hash derives the 64-bit identifiers used for hashed name lookups.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// IDBytes computes the xxHash64 of b without converting it to a string.
func IDBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
