// Package clipboard copies generated names to the system clipboard.
package clipboard

import "errors"

// ErrUnsupported is returned on platforms without clipboard support.
var ErrUnsupported = errors.New("clipboard copy is only supported on macOS")
