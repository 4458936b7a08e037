package logger

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// FileLogger writes log lines to a text file, flushing after every write.
type FileLogger struct {
	verbosity Verbosity
	file      *os.File
	writer    *bufio.Writer
	mu        sync.Mutex
}

// NewFileLogger creates a FileLogger writing to the given path, truncating
// any existing file.
func NewFileLogger(logFilePath string, verbosity Verbosity) (*FileLogger, error) {
	file, err := os.Create(logFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &FileLogger{
		verbosity: verbosity,
		file:      file,
		writer:    bufio.NewWriter(file),
	}, nil
}

// GetVerbosity returns the current verbosity level.
func (l *FileLogger) GetVerbosity() Verbosity { return l.verbosity }

// SetVerbosity sets the minimum severity level that will be logged.
func (l *FileLogger) SetVerbosity(verbosity Verbosity) { l.verbosity = verbosity }

func (l *FileLogger) LogDebug(message string) {
	if l.verbosity > VerbosityDebug {
		return
	}
	l.writeLine("<DEBUG> " + message)
}

func (l *FileLogger) LogInfo(message string) {
	if l.verbosity > VerbosityInfo {
		return
	}
	l.writeLine("<INFO> " + message)
}

func (l *FileLogger) LogWarning(message string) {
	if l.verbosity > VerbosityWarning {
		return
	}
	l.writeLine("<WARN> " + message)
}

func (l *FileLogger) LogError(message string) {
	l.writeLine("<ERROR> " + message)
}

func (l *FileLogger) writeLine(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writer.WriteString(line + "\n")
	l.writer.Flush()
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush log buffer: %w", err)
	}
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
