//go:build !windows

package cleaner

func isSharingViolation(error) bool {
	return false
}
