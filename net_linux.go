//go:build linux

package main

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// listenSocket creates, binds and listens on an IPv4 TCP socket on
// 0.0.0.0:<port>, with SO_REUSEADDR set and a backlog >= 128, non-blocking.
// Grounded on original_source/src/Server.cpp's start(): socket /
// SO_REUSEADDR / fcntl O_NONBLOCK / bind INADDR_ANY / listen(128).
func listenSocket(port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, errors.Wrap(err, "socket")
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, errors.Wrap(err, "setsockopt SO_REUSEADDR")
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, errors.Wrap(err, "set listen socket non-blocking")
	}

	addr := &unix.SockaddrInet4{Port: port}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return -1, errors.Wrapf(err, "bind port %d", port)
	}

	if err := unix.Listen(fd, 128); err != nil {
		_ = unix.Close(fd)
		return -1, errors.Wrap(err, "listen")
	}

	return fd, nil
}

// acceptOne accepts a single pending connection and sets it non-blocking.
// Returns the unwrapped unix.EAGAIN error (which the caller detects with
// isWouldBlock) when no connection is pending.
func acceptOne(listenFD int) (int, error) {
	fd, _, err := unix.Accept(listenFD)
	if err != nil {
		return -1, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func readFD(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

func writeFD(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

func closeFD(fd int) error {
	return unix.Close(fd)
}

// newEpoll creates an epoll instance.
func newEpoll() (int, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return -1, errors.Wrap(err, "epoll_create1")
	}
	return epfd, nil
}

func epollAdd(epfd, fd int, events uint32) error {
	return unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Events: events, Fd: int32(fd)})
}

func epollMod(epfd, fd int, events uint32) error {
	return unix.EpollCtl(epfd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Events: events, Fd: int32(fd)})
}

func epollDel(epfd, fd int) error {
	return unix.EpollCtl(epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func epollWait(epfd int, events []unix.EpollEvent) (int, error) {
	return unix.EpollWait(epfd, events, -1)
}

// selfPipe creates a non-blocking pipe used to wake the single epoll_wait
// call from a signal handler without touching server state from another
// thread (the "self-pipe trick").
func selfPipe() (r, w int, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return -1, -1, errors.Wrap(err, "pipe2")
	}
	return fds[0], fds[1], nil
}

const (
	epollinFlag  = unix.EPOLLIN
	epolloutFlag = unix.EPOLLOUT
)

func isWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

func isEINTR(err error) bool {
	return err == unix.EINTR
}
