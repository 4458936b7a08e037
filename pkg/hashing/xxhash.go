package hashing

import "github.com/cespare/xxhash/v2"

// HashXXHashString computes the in-memory lookup key used to index a
// package's loaded file-entry table by basename. The on-disk format
// keys entries by their Jenkins BET hash (HashLookupString); this key is
// a separate, faster in-process map key and need not match any on-disk
// value.
func HashXXHashString(name string) uint64 {
	return xxhash.Sum64String(name)
}
