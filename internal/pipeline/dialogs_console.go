//go:build !cgo && !windows

package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// NativeDialogs falls back to the terminal when the binary is built without
// cgo, where no GTK or Cocoa dialogs are available. The image path is read
// as one line from standard input.
type NativeDialogs struct{}

// SelectImage prompts for a path on standard input. An empty line or EOF
// counts as a cancelled dialog.
func (NativeDialogs) SelectImage() (string, error) {
	fmt.Fprint(os.Stderr, "Select an Image (jpg, jpeg, png): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	path := strings.TrimSpace(line)
	if path == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read image path: %w", err)
		}
		return "", ErrNoFileSelected
	}
	return path, nil
}

// Error prints msg to standard error.
func (NativeDialogs) Error(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

// Info prints msg to standard error.
func (NativeDialogs) Info(msg string) {
	fmt.Fprintf(os.Stderr, "Success: %s\n", msg)
}
