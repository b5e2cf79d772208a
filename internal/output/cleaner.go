package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// removeFile is os.Remove; tests replace it to simulate concurrent deletion.
var removeFile = os.Remove

// ClearDir removes every file directly inside dir. Subdirectories and dir
// itself are kept.
//
// A missing dir, or a file that disappears before it is removed, is not an
// error. Other failures do not stop the loop; they are joined into the
// returned error.
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to list output directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		err := removeFile(filepath.Join(dir, entry.Name()))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
