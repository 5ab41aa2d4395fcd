//go:build linux

package main

import (
	"log"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const maxEvents = 128
const readChunk = 4096

// listenAndServe brings up the listening socket, the epoll instance, and
// the shutdown self-pipe, then runs the single-threaded reactor loop until
// Shutdown is called or run returns an error.
func (s *server) listenAndServe() error {
	fd, err := listenSocket(s.cfg.port)
	if err != nil {
		return err
	}
	s.listenFD = fd

	epfd, err := newEpoll()
	if err != nil {
		_ = closeFD(fd)
		return err
	}
	s.epfd = epfd

	if err := epollAdd(s.epfd, s.listenFD, epollinFlag); err != nil {
		return errors.Wrap(err, "register listener with epoll")
	}

	r, w, err := selfPipe()
	if err != nil {
		return err
	}
	s.stopR, s.stopW = r, w
	if err := epollAdd(s.epfd, s.stopR, epollinFlag); err != nil {
		return errors.Wrap(err, "register stop pipe with epoll")
	}

	log.Printf("%s listening on 0.0.0.0:%d", s.cfg.name, s.cfg.port)
	return s.run()
}

// run is the single poll loop: one blocking readiness call per iteration,
// then a dispatch pass over the handles it reported ready.
func (s *server) run() error {
	events := make([]unix.EpollEvent, maxEvents)
	for !s.done {
		n, err := epollWait(s.epfd, events)
		if err != nil {
			if isEINTR(err) {
				continue
			}
			return errors.Wrap(err, "epoll_wait")
		}

		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			ev := events[i].Events

			switch {
			case fd == s.listenFD:
				s.handleAccept()
			case fd == s.stopR:
				s.drainStopPipe()
				s.shutdown()
			default:
				c := s.conns[fd]
				if c == nil {
					continue
				}
				if ev&epollinFlag != 0 {
					s.handleReadable(c)
				}
				// handleReadable may have disconnected c; re-check before
				// touching it again for the write side.
				if s.conns[fd] == nil {
					continue
				}
				if ev&epolloutFlag != 0 {
					s.handleWritable(c)
				}
			}
		}
	}
	return nil
}

// handleAccept drains the listener in a tight loop until accept would
// block, registering each new connection for readability.
func (s *server) handleAccept() {
	for {
		fd, err := acceptOne(s.listenFD)
		if err != nil {
			if !isWouldBlock(err) {
				log.Printf("accept: %v", err)
			}
			return
		}

		c := newConnection(fd)
		s.conns[fd] = c
		if err := epollAdd(s.epfd, fd, epollinFlag); err != nil {
			log.Printf("epoll_ctl add %d: %v", fd, err)
			_ = closeFD(fd)
			delete(s.conns, fd)
			continue
		}
	}
}

// handleReadable drains fd in a tight loop, appends to the inbound buffer,
// then extracts and dispatches every complete line it now contains.
func (s *server) handleReadable(c *connection) {
	buf := make([]byte, readChunk)
	for {
		n, err := readFD(c.h, buf)
		if err != nil {
			// Any negative return is treated as would-block; never retry
			// on a specific error code.
			break
		}
		if n == 0 {
			s.disconnect(c.h, "Client quit")
			return
		}
		c.in.append(buf[:n])
	}

	for {
		idx := c.in.indexByte('\n')
		if idx < 0 {
			break
		}
		raw := string(c.in.bytes()[:idx+1])
		c.in.consume(idx + 1)

		line := trimCRLF(raw)
		if line == "" {
			continue
		}
		s.dispatch(c, line)

		if s.conns[c.h] == nil {
			return
		}
	}
}

// handleWritable issues one send of the whole outbound buffer and consumes
// what the kernel accepted.
func (s *server) handleWritable(c *connection) {
	if c.out.len() == 0 {
		return
	}
	n, err := writeFD(c.h, c.out.bytes())
	if err != nil {
		// negative/errored return: ignored, retried on next writable signal.
		return
	}
	c.out.consume(n)
	s.updateInterest(c)
}

// updateInterest switches a connection's epoll interest between readable
// and readable+writable based on whether it has pending outbound bytes.
func (s *server) updateInterest(c *connection) {
	wantWrite := c.out.len() > 0
	if wantWrite == c.writeInterest {
		return
	}
	c.writeInterest = wantWrite
	events := uint32(epollinFlag)
	if wantWrite {
		events |= epolloutFlag
	}
	if err := epollMod(s.epfd, c.h, events); err != nil {
		log.Printf("epoll_ctl mod %d: %v", c.h, err)
	}
}

// enqueue appends line to h's outbound buffer and immediately flips its
// epoll interest, so every recipient of a fan-out — not just the
// connection currently being processed — gets POLLOUT registered.
func (s *server) enqueue(h handle, line string) {
	c := s.conns[h]
	if c == nil {
		return
	}
	c.out.append([]byte(line))
	s.updateInterest(c)
}

func (s *server) sendToClient(h handle, line string) {
	s.enqueue(h, line)
}

// sendToChannel enqueues line onto every member's outbound buffer except
// exceptH. A member handle with no live connection is skipped defensively;
// that race cannot occur in this single-threaded model.
func (s *server) sendToChannel(name string, exceptH handle, line string) {
	ch := s.findChannel(name)
	if ch == nil {
		return
	}
	for h := range ch.members {
		if h == exceptH {
			continue
		}
		if s.conns[h] == nil {
			continue
		}
		s.enqueue(h, line)
	}
}

// disconnect is the single routine that may remove a connection. It
// collects channel memberships, broadcasts QUIT to each, leaves the
// channel, and only after that loop destroys any channel left empty —
// never mutating the channel index while deciding what to destroy.
func (s *server) disconnect(h handle, reason string) {
	c := s.conns[h]
	if c == nil {
		return
	}

	names := s.channelsOf(h)
	quitLine := c.uhost(s.cfg.name) + "QUIT :" + reason + "\r\n"
	for _, name := range names {
		s.sendToChannel(name, h, quitLine)
		if ch := s.findChannel(name); ch != nil {
			ch.removeMember(h)
		}
	}
	for _, name := range names {
		s.removeChannelIfEmpty(name)
	}

	if c.nick != "" {
		delete(s.nickToH, foldASCII(c.nick))
	}

	_ = epollDel(s.epfd, h)
	_ = closeFD(h)
	delete(s.conns, h)
}

// Shutdown wakes the reactor from outside its own thread via the self-pipe;
// the reactor observes it on the next iteration and performs an orderly
// shutdown from inside the loop.
func (s *server) Shutdown() {
	_, _ = writeFD(s.stopW, []byte{0})
}

func (s *server) drainStopPipe() {
	buf := make([]byte, 64)
	for {
		n, err := readFD(s.stopR, buf)
		if err != nil || n == 0 {
			return
		}
	}
}

// shutdown sends every connection a farewell QUIT and closes everything
// down, then marks the loop done.
func (s *server) shutdown() {
	reason := "Server shutting down"
	handles := make([]handle, 0, len(s.conns))
	for h := range s.conns {
		handles = append(handles, h)
	}
	for _, h := range handles {
		c := s.conns[h]
		if c == nil {
			continue
		}
		line := c.uhost(s.cfg.name) + "QUIT :" + reason + "\r\n"
		_, _ = writeFD(h, []byte(line))
		_ = epollDel(s.epfd, h)
		_ = closeFD(h)
		delete(s.conns, h)
	}
	_ = closeFD(s.listenFD)
	_ = closeFD(s.stopR)
	_ = closeFD(s.stopW)
	s.done = true
}
