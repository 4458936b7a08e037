// Package cipher implements the IFS archive's legacy encryption table:
// the keyed string hash used to derive HET/BET metadata keys, and the
// matching block cipher used to decrypt those metadata blocks. Payload
// decryption (AES-192-CTR) lives in pkg/ifs directly, since it is a
// stdlib-standard primitive rather than this bespoke legacy scheme.
package cipher

import "sync"

// tableSize is five spans of 256 entries. Only offsets 0, 0x100, 0x200,
// 0x300, and 0x400 are ever referenced; the layout is kept exactly as
// the source built it rather than trimmed to the spans actually used.
const tableSize = 0x500

var (
	once  sync.Once
	table [tableSize]uint32
)

// buildTable derives the 5x256 table from a fixed LCG seed, exactly as
// the source's BuildIFSEncryptionTable does: two divmod passes per
// table-row per span produce one 32-bit seed value.
func buildTable() {
	var seed uint32
	r := int64(0x100001)

	for i := 0; i < 0x100; i++ {
		for j := 0; j < 5; j++ {
			r = (r*125 + 3) % 0x2AAAAB
			seed = uint32(r&0xFFFF) << 16

			r = (r*125 + 3) % 0x2AAAAB
			seed |= uint32(r & 0xFFFF)

			table[0x100*j+i] = seed
		}
	}
}

// ensureTable builds the table exactly once, concurrency-safely, no
// matter how many callers race to use the cipher first.
func ensureTable() {
	once.Do(buildTable)
}

// HashString computes the keyed hash of value at the given table
// offset, matching the source's HashString: non-ASCII bytes fold to
// '?', lowercase ASCII letters fold to uppercase, and the hash threads
// through the table at HashOffset+b for each byte b.
func HashString(value string, hashOffset uint32) uint32 {
	ensureTable()

	hash := uint32(0x7FED7FED)
	seed := uint32(0xEEEEEEEE)

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= 128 {
			c = '?'
		}
		if c > 0x60 && c < 0x7B {
			c -= 0x20
		}

		hash = table[hashOffset+uint32(c)] ^ (hash + seed)
		seed += hash + (seed << 5) + uint32(c) + 3
	}

	return hash
}

// DecryptIFSBlock decrypts data in place, one little-endian uint32 word
// at a time, iterating backwards from the end exactly as the source
// does. hash is the per-block key derived from HashString (the HET or
// BET key); it is consumed and updated per word, not reused verbatim.
func DecryptIFSBlock(data []uint32, hash uint32) {
	ensureTable()

	temp := uint32(0xEEEEEEEE)

	for i := len(data); i > 0; i-- {
		idx := i - 1
		temp += table[0x400+(hash&0xFF)]
		buffer := data[idx] ^ (temp + hash)
		temp += buffer + (temp << 5) + 3
		data[idx] = buffer

		hash = (hash >> 11) | (0x11111111 + ((hash ^ 0x7FF) << 21))
	}
}
