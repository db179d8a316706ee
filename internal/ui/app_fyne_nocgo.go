//go:build fyne && !cgo

package ui

import "fmt"

// This stub is compiled when the build uses -tags fyne but CGO is disabled.
func Run(_ Options) error {
	return fmt.Errorf("the fyne preview requires cgo (OpenGL); rebuild with CGO_ENABLED=1 and a C toolchain: CGO_ENABLED=1 go run -tags fyne ./cmd/bubble ui")
}
