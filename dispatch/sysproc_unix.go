//go:build !windows

package dispatch

import "syscall"

// sysProcAttr detaches spawned players into their own process group so a
// closed terminal does not take the playback down with it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
