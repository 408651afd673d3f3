//go:build windows

package dispatch

import "syscall"

// Windows manages process groups on its own; no attributes are needed.
func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
