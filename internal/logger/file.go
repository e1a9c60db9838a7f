// ABOUTME: Log file sink for the interactive console
// ABOUTME: Keeps log output off the terminal while the TUI owns the screen

package logger

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the log file created inside the data directory.
const FileName = "academia.log"

// OpenFile opens dir/academia.log for appending, creating dir when needed.
// The caller closes the file.
func OpenFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("logger: empty log directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("logger: creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logger: opening %s: %w", path, err)
	}
	return f, nil
}
