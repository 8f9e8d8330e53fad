package openrgb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/Azarattum/ColorHoster/internal/logging"
	"github.com/Azarattum/ColorHoster/internal/registry"
)

// Server is the OpenRGB-compatible SDK server: it listens on a TCP port and
// translates the binary wire protocol into registry/keyboard operations.
type Server struct {
	registry    *registry.Registry
	profilesDir string
	logger      *slog.Logger
	raw         logging.RawLogger
}

// New builds a Server bound to reg, persisting profiles under profilesDir.
func New(reg *registry.Registry, profilesDir string, logger *slog.Logger) *Server {
	return &Server{registry: reg, profilesDir: profilesDir, logger: logger}
}

// SetRawLogger attaches a raw wire-traffic logger; nil (the default)
// disables raw logging.
func (s *Server) SetRawLogger(raw logging.RawLogger) {
	s.raw = raw
}

// Listen binds the server's TCP address. Splitting Listen from Serve lets
// the supervisor observe bind failures before committing to the accept
// loop.
func (s *Server) Listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// Serve runs the accept loop until ctx is cancelled or the listener fails.
// It always closes ln before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				return nil
			}
			s.logger.Error("openrgb: accept error", "error", err)
			continue
		}
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetNoDelay(true)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// responder serialises writes to one client connection; reads and writes
// happen on different goroutines in handleConn so a lock is needed even
// though requests are processed one at a time.
type responder struct {
	mu   sync.Mutex
	conn net.Conn
	raw  logging.RawLogger
}

func (r *responder) reply(requestID uint32, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raw != nil {
		r.raw.Log(true, payload)
	}
	return writeFrame(r.conn, requestID, payload)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	state := &connState{clientName: "unknown"}
	resp := &responder{conn: conn, raw: s.raw}

	changed := s.registry.Subscribe()

	type readResult struct {
		f   *frame
		err error
	}
	frames := make(chan readResult, 1)
	startRead := func() {
		go func() {
			f, err := readFrame(conn)
			frames <- readResult{f: f, err: err}
		}()
	}
	startRead()

	for {
		select {
		case <-ctx.Done():
			return

		case <-changed:
			changed = s.registry.Subscribe()
			if err := resp.reply(RequestDeviceListUpdated, nil); err != nil {
				logger.Info("client disconnected", "error", err)
				return
			}

		case res := <-frames:
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					logger.Info("client disconnected")
				} else {
					logger.Info("connection closed", "error", res.err)
				}
				return
			}
			if s.raw != nil {
				s.raw.Log(false, res.f.Payload)
			}
			if err := s.dispatch(res.f, resp, state, logger); err != nil {
				logger.Info("terminating connection", "error", err)
				return
			}
			startRead()
		}
	}
}
