//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsElevated reports whether the process runs with an elevated token.
// C:\Windows\Temp and Prefetch are mostly undeletable without it.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
