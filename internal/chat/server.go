package chat

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/wtask/framechat/internal/chat/frame"
	"github.com/wtask/framechat/internal/chat/registry"
	"github.com/wtask/framechat/pkg/background"
)

// ErrServerClosed - returned by Serve after Shutdown.
var ErrServerClosed = errors.New("chat.Server: closed")

// Server - represents chat server over any net.Listener implementation.
type Server struct {
	scope   *background.Scope
	clients *registry.Registry

	logger        Logger
	history       MessageHistory
	historyGreets int
	maxFrameSize  int
	readTimeout,
	writeTimeout time.Duration
}

// NewServer - creates new chat server which is ready to serve several network listeners.
func NewServer(options ...ServerOption) (*Server, error) {
	s := &Server{
		scope:        background.NewScope(context.Background()),
		clients:      registry.New(),
		maxFrameSize: frame.DefaultMaxSize,
		writeTimeout: 30 * time.Second,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Clients - returns directory of server clients.
func (s *Server) Clients() *registry.Registry {
	return s.clients
}

// History - returns attached message history or nil.
func (s *Server) History() MessageHistory {
	return s.history
}

// MaxFrameSize - returns limit of incoming message size.
func (s *Server) MaxFrameSize() int {
	return s.maxFrameSize
}

// Timeouts - returns idle read timeout and write timeout of client connections.
func (s *Server) Timeouts() (read, write time.Duration) {
	return s.readTimeout, s.writeTimeout
}

// Serve - accepts connections on the listener and handles every client in its own goroutine.
// Failed accepts are logged and skipped. Always returns non-nil error,
// ErrServerClosed after Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	if listener == nil {
		return errors.New("chat.Server: listener is nil")
	}
	served := make(chan struct{})
	defer close(served)
	if !s.scope.Go(func(ctx context.Context) {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-served:
		}
	}) {
		listener.Close()
		return ErrServerClosed
	}
	logInfo(s.logger, "Listen", formatAddress(listener.Addr()))

	var delay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.scope.Expired() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			delay = acceptDelay(delay)
			logError(s.logger, "Accept failed:", err, "retrying in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		t, err := frame.NewConn(
			conn,
			frame.WithMaxSize(s.maxFrameSize),
			frame.WithReadTimeout(s.readTimeout),
			frame.WithWriteTimeout(s.writeTimeout),
		)
		if err != nil {
			logError(s.logger, "Can't wrap connection:", err)
			conn.Close()
			continue
		}
		go s.Handle(t)
	}
}

func acceptDelay(prev time.Duration) time.Duration {
	if prev == 0 {
		return 5 * time.Millisecond
	}
	if next := 2 * prev; next < time.Second {
		return next
	}
	return time.Second
}

// Handle - serves single client over given transport until the client is gone.
// Blocks, the transport is always closed on return.
func (s *Server) Handle(t registry.Transport) {
	if t == nil {
		return
	}
	if !s.scope.Enter() {
		t.Close()
		return
	}
	defer s.scope.Done()

	c := &connection{server: s, transport: t}
	c.id = s.clients.AddPending(t)
	reason := partShutdown
	if !s.scope.Expired() {
		c.greet()
		reason = c.serve()
	}
	c.part(reason)
}

// Shutdown - stops server with the specified timeout and returns stopping duration.
// Connected clients are notified, all connections are closed.
// Non-positive timeout means no limit.
func (s *Server) Shutdown(timeout time.Duration) time.Duration {
	if s.scope.Expired() {
		return 0
	}
	from := time.Now()
	notified := make(chan struct{})
	go func() {
		defer close(notified)
		s.clients.Broadcast(stopMessage, registry.NoExclude)
	}()
	// notice may block on a client which does not read, it gets half of the time
	notice := timeout / 2
	if timeout > 0 && notice == 0 {
		notice = timeout
	}
	if !wait(notified, notice) {
		logError(s.logger, "Stop notice is not delivered in time")
	}
	s.scope.Cancel()
	s.clients.CloseAll()
	if !s.scope.Wait(remains(from, timeout)) {
		logError(s.logger, "Shutdown timeout is reached, some clients are not released")
	}
	return time.Since(from)
}

// wait - waits until done is closed no longer than timeout, non-positive timeout means no limit.
func wait(done <-chan struct{}, timeout time.Duration) bool {
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// remains - returns the rest of timeout started at from, it never turns into no limit.
func remains(from time.Time, timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return timeout
	}
	if rest := timeout - time.Since(from); rest > 0 {
		return rest
	}
	return time.Nanosecond
}

// announce - sends public line to connected clients and remembers it in the same order.
func (s *Server) announce(line string, exclude int) {
	s.clients.Publish(line, exclude, func(published string) {
		historyPush(s.history, published)
	})
}
