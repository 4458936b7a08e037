// Package config provides configuration management for the extractor.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/voidhound/codol-extract/pkg/logger"
)

// GameOffsets is one of the four supported build's asset-pool-header offset
// triples: the address of the pool-pointer table, the address of the
// matching pool-size table, the string table address, and the image
// package table address (0 when the build has none).
type GameOffsets struct {
	Pools             uint64
	Sizes             uint64
	StringTable       uint64
	ImagePackageTable uint64
}

// SinglePlayerOffsets holds the embedded offset triples for the supported
// builds. Index 0 is the latest revision; the remaining entries are
// earlier revisions kept for completeness, matching the source's own
// fixed-size offset table.
var SinglePlayerOffsets = [4]GameOffsets{
	{Pools: 0xE3A4B0, Sizes: 0xE3A1D0, StringTable: 0x74E4500, ImagePackageTable: 0x0},
	{Pools: 0xE24958, Sizes: 0xE24678, StringTable: 0x74AF000, ImagePackageTable: 0x0},
	{Pools: 0xE136F8, Sizes: 0xE13418, StringTable: 0x73D1400, ImagePackageTable: 0x0},
	{Pools: 0xE126F8, Sizes: 0xE12418, StringTable: 0x7360180, ImagePackageTable: 0x0},
}

// ExportConfig mirrors the source's game export configuration: which
// output formats a caller wants produced. This build implements no format
// writers itself (see pkg/export), but the toggles still drive which
// export.Sink a caller wires up.
type ExportConfig struct {
	SEAnims   bool
	XAnimsWAW bool
	XAnimsBO  bool

	Maya bool
	OBJ  bool
	XNA  bool
	SMD  bool
	XME  bool

	PNG bool
	DDS bool
}

// DefaultExportConfig returns the source's default toggle set: SEAnim,
// Maya, and PNG enabled, everything else off.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		SEAnims: true,
		Maya:    true,
		PNG:     true,
	}
}

// Settings holds the configuration options for the extractor.
type Settings struct {
	// settingsFilePath is the OS path to the settings file.
	settingsFilePath string

	// logger is the logger reference for debug output.
	logger logger.Logger

	// ProcessName is the executable name to attach to.
	ProcessName string

	// ArchiveDirectory is the OS path containing the game's .ifs packages.
	ArchiveDirectory string

	// OffsetRevision selects which entry of SinglePlayerOffsets to use.
	OffsetRevision int

	// Export holds the output-format toggles.
	Export ExportConfig

	// LoggerVerbosity sets the verbosity level of the logger.
	LoggerVerbosity int
}

// NewSettings creates a new Settings instance with default values.
func NewSettings(settingsFilePath string, log logger.Logger) *Settings {
	return &Settings{
		settingsFilePath: settingsFilePath,
		logger:           log,
		ProcessName:      "codoMP_client_shipRetail.exe",
		ArchiveDirectory: "/opt/codol/",
		OffsetRevision:   0,
		Export:           DefaultExportConfig(),
		LoggerVerbosity:  0,
	}
}

// Offsets returns the GameOffsets selected by OffsetRevision, clamped into
// range rather than panicking on a bad settings value.
func (s *Settings) Offsets() GameOffsets {
	rev := s.OffsetRevision
	if rev < 0 || rev >= len(SinglePlayerOffsets) {
		rev = 0
	}
	return SinglePlayerOffsets[rev]
}

// Initialize loads settings from the settings file.
func (s *Settings) Initialize() error {
	data, err := os.ReadFile(s.settingsFilePath)
	if err != nil {
		s.logger.LogError("Error loading settings file: " + err.Error())
		return err
	}

	parsedSettings := parseKeyValue(string(data), '=', '#')
	if parsedSettings == nil {
		return nil
	}

	if val, ok := parsedSettings["ProcessName"]; ok {
		s.ProcessName = val
	}

	if val, ok := parsedSettings["ArchiveDirectory"]; ok {
		s.ArchiveDirectory = filepath.Clean(val) + string(filepath.Separator)
	}

	if val, ok := parsedSettings["OffsetRevision"]; ok {
		if intVal, err := strconv.Atoi(val); err == nil {
			s.OffsetRevision = intVal
		}
	}

	if val, ok := parsedSettings["SEAnims"]; ok {
		s.Export.SEAnims = parseBool(val)
	}
	if val, ok := parsedSettings["XAnimsWAW"]; ok {
		s.Export.XAnimsWAW = parseBool(val)
	}
	if val, ok := parsedSettings["XAnimsBO"]; ok {
		s.Export.XAnimsBO = parseBool(val)
	}
	if val, ok := parsedSettings["Maya"]; ok {
		s.Export.Maya = parseBool(val)
	}
	if val, ok := parsedSettings["OBJ"]; ok {
		s.Export.OBJ = parseBool(val)
	}
	if val, ok := parsedSettings["XNA"]; ok {
		s.Export.XNA = parseBool(val)
	}
	if val, ok := parsedSettings["SMD"]; ok {
		s.Export.SMD = parseBool(val)
	}
	if val, ok := parsedSettings["XME"]; ok {
		s.Export.XME = parseBool(val)
	}
	if val, ok := parsedSettings["PNG"]; ok {
		s.Export.PNG = parseBool(val)
	}
	if val, ok := parsedSettings["DDS"]; ok {
		s.Export.DDS = parseBool(val)
	}

	if val, ok := parsedSettings["LoggerVerbosity"]; ok {
		if intVal, err := strconv.Atoi(val); err == nil {
			s.LoggerVerbosity = intVal
		}
	}

	return nil
}

// parseKeyValue parses lines with key-value pairs separated by delimiter
// into a map, skipping blank lines and lines starting with commentChar.
// Lines that don't split into exactly two parts are skipped.
func parseKeyValue(text string, delimiter, commentChar rune) map[string]string {
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	result := make(map[string]string)
	delimStr := string(delimiter)
	commentPrefix := string(commentChar)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		parts := strings.SplitN(line, delimStr, 2)
		if len(parts) != 2 {
			continue
		}

		result[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseBool converts a string to a boolean value.
// Accepts "true", "True", "TRUE", "1" as true values.
func parseBool(s string) bool {
	switch s {
	case "true", "True", "TRUE", "1":
		return true
	default:
		return false
	}
}
