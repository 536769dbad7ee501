//go:build !darwin

package clipboard

// Copy writes text to the clipboard.
func Copy(string) error {
	return ErrUnsupported
}
