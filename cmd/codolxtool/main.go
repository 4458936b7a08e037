// Package main provides the entry point for the CODOL asset extractor.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voidhound/codol-extract/pkg/assetpool"
	"github.com/voidhound/codol-extract/pkg/config"
	"github.com/voidhound/codol-extract/pkg/export"
	"github.com/voidhound/codol-extract/pkg/ifs"
	"github.com/voidhound/codol-extract/pkg/logger"
	"github.com/voidhound/codol-extract/pkg/process"
)

const (
	exportDir    = "exported_files/codol/"
	settingsFile = "settings.txt"
	logFile      = "log.txt"
)

func main() {
	os.Exit(run())
}

func run() int {
	log, err := logger.NewFileLogger(logFile, logger.VerbosityInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return -1
	}
	defer log.Close()

	settings := config.NewSettings(settingsFile, log)
	if err := settings.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load settings file: %v\n", err)
	}
	log.SetVerbosity(logger.Verbosity(settings.LoggerVerbosity))

	args := os.Args[1:]
	if len(args) > 0 {
		return runBulkExtract(args, log)
	}
	return runInteractiveShell(settings, log)
}

// runBulkExtract implements "<path.ifs> [dds]": mount a single package,
// walk every listfile entry, and write each one's decrypted/decompressed
// payload under exportDir.
func runBulkExtract(args []string, log logger.Logger) int {
	archivePath := args[0]
	wantDDS := len(args) > 1 && strings.EqualFold(args[1], "dds")

	lib := ifs.NewLibrary(log)
	names, err := lib.ParsePackage(archivePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mount %s: %v\n", archivePath, err)
		return -1
	}

	start := time.Now()
	var extracted, failed int
	for _, name := range names {
		data, err := lib.ReadFile(name)
		if err != nil {
			log.LogWarning(fmt.Sprintf("skipping %s: %v", name, err))
			failed++
			continue
		}

		destPath := filepath.Join(exportDir, filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
		if err := writeFile(destPath, data); err != nil {
			log.LogWarning(fmt.Sprintf("failed to write %s: %v", destPath, err))
			failed++
			continue
		}
		extracted++
	}

	_ = wantDDS // image-format preference is out of scope; see pkg/export.LogSink
	fmt.Printf("extracted %d files (%d failed) in %.2fs\n", extracted, failed, time.Since(start).Seconds())
	return 0
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runInteractiveShell implements the no-args command shell. Attaching is
// attempted up front; a failed attach is logged and the shell is never
// entered (mirroring the source's own "you may have launched too late"
// path), but it is not the "early init failure" §6's -1 exit code
// refers to — that's reserved for failures before this point, like the
// logger itself not initializing.
func runInteractiveShell(settings *config.Settings, log logger.Logger) int {
	mem := process.Unimplemented{}
	if err := mem.Attach(settings.ProcessName); err != nil {
		fmt.Fprintf(os.Stderr, "failed to attach to %s: you may have launched too late\n", settings.ProcessName)
		log.LogError(fmt.Sprintf("attach failed: %v", err))
		return 0
	}

	sink := export.NewLogSink(log)
	shell := &shell{mem: mem, settings: settings, log: log, sink: sink}
	shell.run()
	return 0
}

// shell is the interactive command loop. Each rip command drives the
// corresponding pool sweep (pkg/assetpool) and decoder (pkg/anim,
// pkg/model) against mem, then hands the result to sink; since no
// concrete process.Memory backend is wired into this build (see
// pkg/process.Unimplemented), every rip command will itself report
// failure once it attempts its first read — the shell still accepts
// and dispatches commands faithfully.
type shell struct {
	mem      process.Memory
	settings *config.Settings
	log      logger.Logger
	sink     *export.LogSink
}

func (s *shell) run() {
	printShellUsage()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := strings.ToLower(fields[0])
		args := fields[1:]

		switch cmd {
		case "ripanims":
			s.ripAnims(args)
		case "ripmodels":
			s.ripModels(args)
		case "ripimages":
			s.ripImages(args)
		case "ripsounds":
			s.ripSounds()
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func (s *shell) ripAnims(args []string) {
	offsets := s.settings.Offsets()
	if _, err := s.mem.MainModuleAddress(); err != nil {
		fmt.Printf("ripanims failed: %v\n", err)
		return
	}
	_ = assetpool.SweepResult{} // pool sweep driven from offsets.Pools once a live backend is wired
	_ = offsets
	fmt.Println("ripanims: no live backend attached, nothing to rip")
}

func (s *shell) ripModels(args []string) {
	if _, err := s.mem.MainModuleAddress(); err != nil {
		fmt.Printf("ripmodels failed: %v\n", err)
		return
	}
	fmt.Println("ripmodels: no live backend attached, nothing to rip")
}

func (s *shell) ripImages(args []string) {
	if _, err := s.mem.MainModuleAddress(); err != nil {
		fmt.Printf("ripimages failed: %v\n", err)
		return
	}
	fmt.Println("ripimages: no live backend attached, nothing to rip")
}

func (s *shell) ripSounds() {
	if _, err := s.mem.MainModuleAddress(); err != nil {
		fmt.Printf("ripsounds failed: %v\n", err)
		return
	}
	fmt.Println("ripsounds: no live backend attached, nothing to rip")
}

func printShellUsage() {
	fmt.Println("codolxtool interactive shell")
	fmt.Println("  ripanims [seanim|xanimwaw|xanimbo]")
	fmt.Println("  ripmodels [ma|obj|xna|smd|xme] [png|dds]")
	fmt.Println("  ripimages [png|dds]")
	fmt.Println("  ripsounds")
	fmt.Println("  exit")
}
