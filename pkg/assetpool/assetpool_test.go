package assetpool

import "testing"

// TestSweepSkipsFreeListAndZeroEntries covers S6: a record whose
// RangeCheckPtr falls inside the pool's own storage range, or whose
// NamePtr is zero, is skipped.
func TestSweepSkipsFreeListAndZeroEntries(t *testing.T) {
	const poolStart = 0x1000
	const recordSize = 16

	records := []Record{
		{NamePtr: 0x5000, RangeCheckPtr: 0x5000, Name: "a"},   // kept
		{NamePtr: 0, RangeCheckPtr: 0, Name: ""},               // skipped: zero name ptr
		{NamePtr: 0x1010, RangeCheckPtr: poolStart + 4 + 8, Name: "freehead"}, // skipped: inside pool range
		{NamePtr: 0x6000, RangeCheckPtr: 0x6000, Name: "b"},   // kept
	}

	result := Sweep(records, poolStart, recordSize)

	if len(result.Kept) != 2 || result.Kept[0] != 0 || result.Kept[1] != 3 {
		t.Fatalf("Kept = %v, want [0 3]", result.Kept)
	}
}

// TestSweepPlaceholderDetection covers the "void" pointer-set equality
// rule: the placeholder record is kept once, and any later record whose
// fingerprint matches it exactly is skipped.
func TestSweepPlaceholderDetection(t *testing.T) {
	const poolStart = 0x1000
	const recordSize = 16

	placeholderFingerprint := []uint32{1, 2, 3}
	records := []Record{
		{NamePtr: 0x2000, RangeCheckPtr: 0x2000, Name: "void", Fingerprint: placeholderFingerprint},
		{NamePtr: 0x3000, RangeCheckPtr: 0x3000, Name: "also_placeholder", Fingerprint: []uint32{1, 2, 3}},
		{NamePtr: 0x4000, RangeCheckPtr: 0x4000, Name: "real_anim", Fingerprint: []uint32{9, 9, 9}},
	}

	result := Sweep(records, poolStart, recordSize)

	if result.PlaceholderIndex != 0 {
		t.Fatalf("PlaceholderIndex = %d, want 0", result.PlaceholderIndex)
	}
	if len(result.Kept) != 2 || result.Kept[0] != 0 || result.Kept[1] != 2 {
		t.Fatalf("Kept = %v, want [0 2] (placeholder itself, plus the real asset)", result.Kept)
	}
}

// TestSweepDivergentRangeCheckField covers the image-pool asymmetry: the
// bounds check can use a different field than the zero check.
func TestSweepDivergentRangeCheckField(t *testing.T) {
	const poolStart = 0x1000
	const recordSize = 16

	records := []Record{
		// NamePtr is a real address (non-zero, outside pool), but
		// RangeCheckPtr (standing in for FreeHeadPtr) falls inside the
		// pool's own range, so this is still skipped.
		{NamePtr: 0x9000, RangeCheckPtr: poolStart + 4, Name: "img"},
	}

	result := Sweep(records, poolStart, recordSize)

	if len(result.Kept) != 0 {
		t.Fatalf("Kept = %v, want empty (RangeCheckPtr inside pool)", result.Kept)
	}
}

func TestIsViewModelName(t *testing.T) {
	cases := map[string]bool{
		"viewmodel_ak47_fire": true,
		"ViewModel_Reload":    true,
		"player_ak47_fire":    false,
		"viewmode":            false,
	}
	for name, want := range cases {
		if got := IsViewModelName(name); got != want {
			t.Errorf("IsViewModelName(%q) = %v, want %v", name, got, want)
		}
	}
}
