//go:build windows

package transport

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// controlSocket sets SO_REUSEADDR before bind. Windows has no
// SO_REUSEPORT; SO_REUSEADDR alone allows sharing port 1900.
func controlSocket(network, address string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		opErr = setSocketOptions(fd)
	})
	if err != nil {
		return err
	}
	return opErr
}

func setSocketOptions(fd uintptr) error {
	return windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
}
