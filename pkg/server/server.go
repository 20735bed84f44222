// Package server shares one display between local clients over a Unix
// socket. Every connection gets its own console; the attribute dispatcher
// serializes their writes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sagostin/shuttle-vfd/pkg/attr"
	"github.com/sagostin/shuttle-vfd/pkg/console"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// DefaultSocket is the socket path used when none is configured.
const DefaultSocket = "/run/shuttlevfd.sock"

// Server accepts console connections on a Unix socket.
type Server struct {
	d    *attr.Dispatcher
	path string

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}
}

// New creates a server for d listening on path.
func New(d *attr.Dispatcher, path string) *Server {
	if path == "" {
		path = DefaultSocket
	}
	return &Server{d: d, path: path, conns: make(map[net.Conn]struct{})}
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Listen creates the socket, replacing a stale one left by a previous run.
func (s *Server) Listen() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	vfd.LogInfo(vfd.ComponentServer, "listening", "socket", s.path)
	return nil
}

// Run listens and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled, then closes the
// listener and every open connection and waits for their consoles to
// return. Listen must have been called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server: not listening")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		ln.Close()
		s.closeConns()
		return nil
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}

			if !s.track(conn) {
				conn.Close()
				return nil
			}
			g.Go(func() error {
				s.handle(conn)
				return nil
			})
		}
	})

	err := g.Wait()
	os.Remove(s.path)
	return err
}

func (s *Server) handle(conn net.Conn) {
	defer s.untrack(conn)
	defer conn.Close()

	vfd.LogDebug(vfd.ComponentServer, "client connected")
	if err := console.New(s.d, conn, conn).Run(); err != nil && !errors.Is(err, net.ErrClosed) {
		vfd.LogWarn(vfd.ComponentServer, "client session ended", "error", err)
	}
	vfd.LogDebug(vfd.ComponentServer, "client disconnected")
}

// track registers conn; it reports false once shutdown has started.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
	s.conns = nil
}
