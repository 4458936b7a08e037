// Package ifs reads the proprietary IFS archive format: HET/BET metadata
// tables protected by the legacy keyed cipher, a Jenkins-hashed listfile
// for name resolution, and AES-192-CTR + zlib payloads.
package ifs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/voidhound/codol-extract/pkg/cipher"
	"github.com/voidhound/codol-extract/pkg/hashing"
	"github.com/voidhound/codol-extract/pkg/logger"
	"github.com/voidhound/codol-extract/pkg/xerrors"
)

// headerMagic is "nifs" read as a little-endian uint32.
const headerMagic = 0x7366696e

// hetKeyName and betKeyName are the fixed strings hashed to derive each
// metadata block's decryption key.
const (
	hetKeyName = "(hash table)"
	betKeyName = "(block table)"
)

// header is the fixed-size archive header, read verbatim off disk.
type header struct {
	Magic      uint32
	HeaderSize uint32
	Version    uint16
	SectorSize uint16

	ArchiveSize  uint64
	BetTablePos  uint64
	HetTablePos  uint64
	Md5TablePos  uint64
	BitmapPos    uint64
	HetTableSize uint64
	BetTableSize uint64
	Md5TableSize uint64
	BitmapSize   uint64

	Md5PieceSize uint32
	RawChunkSize uint32
}

type hetBetBlockHeader struct {
	Magic    uint32
	Version  uint32
	DataSize uint32
}

type hetTable struct {
	TableSize     uint32
	EntryCount    uint32
	HashTableSize uint32
	HashEntrySize uint32
	IndexSizeTotal uint32
	IndexSizeExtra uint32
	IndexSize     uint32
	BlockTableSize uint32
}

type betTable struct {
	TableSize      uint32
	EntryCount     uint32
	TableEntrySize uint32

	BitIndexFilePos  uint32
	BitIndexFileSize uint32
	BitIndexCmpSize  uint32
	BitIndexFlagPos  uint32
	BitIndexHashPos  uint32

	UnknownRepeatPos uint32

	BitCountFilePos  uint32
	BitCountFileSize uint32
	BitCountCmpSize  uint32
	BitCountFlagSize uint32
	BitCountHashSize uint32

	UnknownZero uint32

	HashSizeTotal uint32
	HashSizeExtra uint32
	HashSize      uint32

	HashPart1 uint32
	HashPart2 uint32

	HashArraySize uint32
}

// FileEntry is a resolved BET table row: where the entry's data lives in
// its owning package, and how large it is packed/unpacked.
type FileEntry struct {
	PackageIndex  int
	FilePosition  int64
	FileSize      int64
	CompressedSize int64
	Flags         uint64
}

// Package is a reader over a single mounted .ifs file.
type Package struct {
	path string
}

// Library mounts one or more .ifs packages and resolves entry names to
// their FileEntry records, matching the source's in-memory IFSFiles map
// keyed by xxhash of basename.
type Library struct {
	log      logger.Logger
	packages []*Package
	files    map[uint64]FileEntry
}

// NewLibrary creates an empty Library.
func NewLibrary(log logger.Logger) *Library {
	return &Library{
		log:   log,
		files: make(map[uint64]FileEntry),
	}
}

// AddPackage loads path, merging only its .iwi entries, and discards the
// listfile lines it resolved.
func (l *Library) AddPackage(path string) error {
	_, err := l.loadPackage(path, false)
	return err
}

// ParsePackage loads path, merging its .iwi and .mp3 entries, and returns
// those listfile lines for bulk-extraction callers. Lines with any other
// extension are neither merged nor returned.
func (l *Library) ParsePackage(path string) ([]string, error) {
	return l.loadPackage(path, true)
}

// MountDirectory loads every *.ifs file directly under dir.
func (l *Library) MountDirectory(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.ifs"))
	if err != nil {
		return fmt.Errorf("glob %s: %w", dir, err)
	}
	for _, path := range matches {
		if err := l.AddPackage(path); err != nil {
			l.log.LogWarning(fmt.Sprintf("ifs: failed to mount %s: %v", path, err))
		}
	}
	return nil
}

// loadPackage parses one archive's HET/BET tables, resolves its listfile,
// and merges IWI (and, when keepAudio is set, MP3) entries into the
// library's lookup table. It returns the listfile lines that passed that
// extension filter, whether or not the caller wants them retained.
func (l *Library) loadPackage(path string, keepAudio bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var hdr header
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header of %s: %w: %v", path, xerrors.BadArchiveHeader, err)
	}
	if hdr.Magic != headerMagic {
		return nil, fmt.Errorf("%s: %w", path, xerrors.BadArchiveHeader)
	}

	pkg := &Package{path: path}
	l.packages = append(l.packages, pkg)
	packageIndex := len(l.packages) - 1

	hetKey := cipher.HashString(hetKeyName, 0x300)
	betKey := cipher.HashString(betKeyName, 0x300)

	if _, err := f.Seek(int64(hdr.HetTablePos), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek het table: %w", err)
	}
	het, err := readEncryptedBlock(f, hetKey)
	if err != nil {
		return nil, fmt.Errorf("read het table of %s: %w", path, err)
	}

	var hetT hetTable
	if err := binary.Read(bytes.NewReader(het), binary.LittleEndian, &hetT); err != nil {
		return nil, fmt.Errorf("parse het table of %s: %w", path, err)
	}

	var andMask, orMask uint64
	if hetT.HashEntrySize != 0x40 {
		andMask = uint64(1) << hetT.HashEntrySize
	}
	andMask--
	orMask = uint64(1) << (hetT.HashEntrySize - 1)

	if _, err := f.Seek(int64(hdr.BetTablePos), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek bet table: %w", err)
	}
	bet, err := readEncryptedBlock(f, betKey)
	if err != nil {
		return nil, fmt.Errorf("read bet table of %s: %w", path, err)
	}

	betReader := bytes.NewReader(bet)
	var betT betTable
	if err := binary.Read(betReader, binary.LittleEndian, &betT); err != nil {
		return nil, fmt.Errorf("parse bet table of %s: %w", path, err)
	}

	entryTableBytes := (betT.TableEntrySize*betT.EntryCount + 7) / 8
	hashTableBytes := (betT.HashSizeTotal*betT.EntryCount + 7) / 8

	tableEntries := make([]byte, entryTableBytes)
	if _, err := io.ReadFull(betReader, tableEntries); err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read bet entries of %s: %w", path, err)
	}
	tableHashes := make([]byte, hashTableBytes)
	if _, err := io.ReadFull(betReader, tableHashes); err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read bet hashes of %s: %w", path, err)
	}

	fileEntries := make(map[uint64]FileEntry, betT.EntryCount)
	var listFileHash uint64
	var bitOffset, hashOffset uint32

	for i := uint32(0); i < betT.EntryCount; i++ {
		entry := FileEntry{PackageIndex: packageIndex}

		entry.FilePosition = ReadBitLenInteger(tableEntries, bitOffset, betT.BitCountFilePos)
		bitOffset += betT.BitCountFilePos
		entry.FileSize = ReadBitLenInteger(tableEntries, bitOffset, betT.BitCountFileSize)
		bitOffset += betT.BitCountFileSize
		entry.CompressedSize = ReadBitLenInteger(tableEntries, bitOffset, betT.BitCountCmpSize)
		bitOffset += betT.BitCountCmpSize
		entry.Flags = ReadBitLenUInteger(tableEntries, bitOffset, betT.BitCountFlagSize)
		bitOffset += betT.BitCountFlagSize

		bitOffset += betT.BitCountHashSize
		bitOffset += betT.HashArraySize

		nameHash := ReadBitLenUInteger(tableHashes, hashOffset, betT.HashSizeTotal)
		hashOffset += betT.HashSizeTotal

		if entry.FilePosition == int64(hdr.HeaderSize) && entry.Flags == 0x80000000 {
			listFileHash = nameHash
		}

		fileEntries[nameHash] = entry
	}

	getBetHash := func(hash uint64) uint64 {
		buffer := (hash & andMask) | orMask
		return buffer & (andMask >> 8)
	}

	listEntry, ok := fileEntries[listFileHash]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, xerrors.MissingListfile)
	}

	if _, err := f.Seek(listEntry.FilePosition, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek listfile: %w", err)
	}
	listBuf := make([]byte, listEntry.FileSize)
	if _, err := io.ReadFull(f, listBuf); err != nil {
		return nil, fmt.Errorf("read listfile of %s: %w", path, err)
	}
	if !strings.Contains(string(listBuf), ".lst\r\n") {
		return nil, fmt.Errorf("%s: %w", path, xerrors.MissingListfile)
	}

	var discovered []string
	for _, line := range strings.Split(string(listBuf), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ".iwi") && !(keepAudio && strings.HasSuffix(line, ".mp3")) {
			continue
		}

		entryHash := hashing.HashXXHashString(filepath.Base(line))
		betHash := getBetHash(hashing.HashLookupString(line))

		discovered = append(discovered, line)

		if resolved, ok := fileEntries[betHash]; ok {
			if shouldPreferListfileEntry(line, entryHash, l.files) {
				l.files[entryHash] = resolved
			}
		}
	}

	return discovered, nil
}

// shouldPreferListfileEntry decides whether a newly-resolved listfile
// line should overwrite whatever is already mapped under entryHash: yes
// if nothing is mapped yet, or if this line lives under "hires/" (higher
// resolution variants always win over their standard-resolution twin).
func shouldPreferListfileEntry(line string, entryHash uint64, existing map[uint64]FileEntry) bool {
	if _, ok := existing[entryHash]; !ok {
		return true
	}
	return strings.HasPrefix(line, "hires/")
}

// readEncryptedBlock reads a het/bet block header plus its data and
// decrypts it in place with the legacy cipher, word by word, returning
// the decrypted bytes ready for the fixed table header that follows.
func readEncryptedBlock(r io.Reader, key uint32) ([]byte, error) {
	var blockHdr hetBetBlockHeader
	if err := binary.Read(r, binary.LittleEndian, &blockHdr); err != nil {
		return nil, fmt.Errorf("read block header: %w", err)
	}

	wordCount := integralBufferSize(blockHdr.DataSize)
	raw := make([]byte, wordCount*4)
	if _, err := io.ReadFull(r, raw[:blockHdr.DataSize]); err != nil {
		return nil, fmt.Errorf("read block data: %w", err)
	}

	words := make([]uint32, wordCount)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	cipher.DecryptIFSBlock(words, key)
	for i, w := range words {
		binary.LittleEndian.PutUint32(raw[i*4:i*4+4], w)
	}

	return raw, nil
}
