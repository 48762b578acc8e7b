//go:build tinygo || !cgo

package gsurfaux

import "errors"

// RunEditor requires cgo for window and OpenGL access.
func RunEditor(cfg EditorConfig) error {
	return errors.New("gsurfaux: editor requires cgo")
}
