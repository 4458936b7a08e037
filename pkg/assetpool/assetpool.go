// Package assetpool implements the asset-pool sweep shared by every pool
// type (animations, models, images, sounds): walk a fixed-stride array of
// records, skip free-list entries and the "void" placeholder, and yield
// the surviving record indices in pool order.
package assetpool

import "strings"

// Record is one pool entry's address-valued fields, already read by the
// driver. NamePtr and RangeCheckPtr are usually the same field; the
// image pool's source compares a separate FreeHeadPtr against the pool
// bounds while still zero-checking NamePtr, so the two are kept distinct
// here to preserve that exact asymmetry rather than unify them.
type Record struct {
	NamePtr       uint32
	RangeCheckPtr uint32

	// Name is the record's resolved asset name, already read by the
	// driver (the source only reads a name after the pointer-bounds
	// skip test passes; reading it eagerly here costs nothing for a
	// pure sweep function and keeps this package's signature simple).
	Name string

	// Fingerprint holds the pointer fields compared field-by-field
	// against the "void" placeholder record: ten for animations, nine
	// for models, per design note §9. Pools with no placeholder concept
	// (images, sounds) pass nil.
	Fingerprint []uint32
}

// SweepResult is one pool pass's outcome.
type SweepResult struct {
	// Kept holds the indices (into the input records slice) of records
	// that survived both the pool-bounds skip and the placeholder skip,
	// in original pool order.
	Kept []int

	// PlaceholderIndex is the index of the record named "void", or -1
	// if none was found in this pool.
	PlaceholderIndex int
}

// Sweep applies the pool skip rule: a record is skipped if its
// RangeCheckPtr lies strictly within (poolStart, poolStart + 4 +
// count*recordSize) — i.e. it is a free-list pointer back into this same
// pool's own storage — or its NamePtr is zero. Of the records that pass,
// the one named "void" is recorded as the pool's placeholder; every
// subsequent record whose Fingerprint matches the placeholder's
// field-by-field is also skipped (S6, and design note §9's pointer-set
// equality rule).
func Sweep(records []Record, poolStart uint32, recordSize uint32) SweepResult {
	count := uint32(len(records))
	poolOffset := poolStart + 4 // the free-head pointer occupies the first 4 bytes
	maxOffset := poolOffset + count*recordSize

	result := SweepResult{PlaceholderIndex: -1}
	var placeholder []uint32

	for i, rec := range records {
		if rec.NamePtr == 0 {
			continue
		}
		if rec.RangeCheckPtr > poolStart && rec.RangeCheckPtr < maxOffset {
			continue
		}

		if rec.Name == "void" {
			result.PlaceholderIndex = i
			placeholder = rec.Fingerprint
			result.Kept = append(result.Kept, i)
			continue
		}

		if placeholder != nil && fingerprintEqual(rec.Fingerprint, placeholder) {
			continue
		}

		result.Kept = append(result.Kept, i)
	}

	return result
}

func fingerprintEqual(a, b []uint32) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsViewModelName reports whether name has the case-insensitive
// "viewmodel_" prefix the source checks with _strnicmp to flag viewmodel
// animations.
func IsViewModelName(name string) bool {
	const prefix = "viewmodel_"
	if len(name) < len(prefix) {
		return false
	}
	return strings.EqualFold(name[:len(prefix)], prefix)
}
