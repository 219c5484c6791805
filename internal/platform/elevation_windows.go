//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsElevated returns true if the process token carries admin elevation
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
