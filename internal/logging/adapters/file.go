package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jobi-server/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output with
// size-based rotation
type FileAdapter struct {
	name        string
	config      FileConfig
	currentFile *os.File
	currentSize int64
	mu          sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath   string `yaml:"file_path"`   // path to log file
	Format     string `yaml:"format"`      // json or text
	MaxSize    int64  `yaml:"max_size"`    // max file size in bytes (0 = no limit)
	MaxBackups int    `yaml:"max_backups"` // max number of backup files to keep
	CreateDirs bool   `yaml:"create_dirs"` // create parent directories if missing
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.Format == "" {
		config.Format = "json"
	}
	if config.MaxBackups == 0 {
		config.MaxBackups = 10
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	adapter := &FileAdapter{
		name:   name,
		config: config,
	}

	if err := adapter.openFile(); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return adapter, nil
}

// Write writes a log entry to the file
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.config.MaxSize > 0 && a.currentSize >= a.config.MaxSize {
		if err := a.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	var output string
	var err error

	switch a.config.Format {
	case "text":
		output, err = formatText(entry, false)
	default:
		output, err = formatJSON(entry)
	}
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	n, err := fmt.Fprintln(a.currentFile, output)
	if err != nil {
		return err
	}
	a.currentSize += int64(n)

	return nil
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.currentFile != nil {
		return a.currentFile.Close()
	}
	return nil
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}

func (a *FileAdapter) openFile() error {
	file, err := os.OpenFile(a.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	a.currentFile = file
	a.currentSize = info.Size()
	return nil
}

// rotate renames the current file with a numeric suffix and reopens a
// fresh one. Older backups past MaxBackups are removed.
func (a *FileAdapter) rotate() error {
	if a.currentFile != nil {
		a.currentFile.Close()
	}

	for i := a.config.MaxBackups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", a.config.FilePath, i)
		to := fmt.Sprintf("%s.%d", a.config.FilePath, i+1)
		if _, err := os.Stat(from); err == nil {
			os.Rename(from, to)
		}
	}

	if err := os.Rename(a.config.FilePath, a.config.FilePath+".1"); err != nil && !os.IsNotExist(err) {
		return err
	}

	os.Remove(fmt.Sprintf("%s.%d", a.config.FilePath, a.config.MaxBackups+1))

	return a.openFile()
}
