//go:build !windows

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlSocket sets address-reuse options before bind so multiple SSDP
// stacks can share port 1900 on one host.
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
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}
	return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
}
