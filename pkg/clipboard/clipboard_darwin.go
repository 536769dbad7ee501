//go:build darwin

package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// Copy writes text to the clipboard.
func Copy(text string) error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("clipboard init: %w", initErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
