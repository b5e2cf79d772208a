//go:build cgo || windows

package pipeline

import (
	"errors"

	"github.com/sqweek/dialog"
)

// NativeDialogs shows the operating system's file picker and message boxes.
type NativeDialogs struct{}

// SelectImage opens a file picker limited to JPEG and PNG files.
func (NativeDialogs) SelectImage() (string, error) {
	path, err := dialog.File().
		Filter("Image files", "jpg", "jpeg", "png").
		Title("Select an Image").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrNoFileSelected
	}
	return path, err
}

// Error shows msg in an error box.
func (NativeDialogs) Error(msg string) {
	dialog.Message("%s", msg).Title("Error").Error()
}

// Info shows msg in an information box.
func (NativeDialogs) Info(msg string) {
	dialog.Message("%s", msg).Title("Success").Info()
}
