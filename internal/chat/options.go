package chat

import (
	"errors"
	"fmt"
	"time"
)

// ServerOption - optional setting of Server.
type ServerOption func(s *Server) error

// WithLogger - attach logger for server events.
func WithLogger(l Logger) ServerOption {
	return func(s *Server) error {
		if l == nil {
			return errors.New("chat.WithLogger: logger is nil")
		}
		s.logger = l
		return nil
	}
}

// WithMessageHistory - attach history of public lines.
// Every new client receives up to greets latest lines after welcome message.
func WithMessageHistory(h MessageHistory, greets int) ServerOption {
	return func(s *Server) error {
		if h == nil {
			return errors.New("chat.WithMessageHistory: history is nil")
		}
		if greets < 0 {
			return fmt.Errorf("chat.WithMessageHistory: invalid greets value (%d)", greets)
		}
		s.history = h
		s.historyGreets = greets
		return nil
	}
}

// WithMaxFrameSize - overwrites default limit of incoming message size in bytes.
// Client which sends bigger message is disconnected.
func WithMaxFrameSize(size int) ServerOption {
	return func(s *Server) error {
		if size <= 0 {
			return fmt.Errorf("chat.WithMaxFrameSize: invalid size (%d)", size)
		}
		s.maxFrameSize = size
		return nil
	}
}

// WithReadTimeout - sets idle period before client is disconnected, zero disables it.
func WithReadTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) error {
		if timeout < 0 {
			return fmt.Errorf("chat.WithReadTimeout: invalid timeout (%v)", timeout)
		}
		s.readTimeout = timeout
		return nil
	}
}

// WithWriteTimeout - limits duration of every outgoing send, zero disables it.
func WithWriteTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) error {
		if timeout < 0 {
			return fmt.Errorf("chat.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		s.writeTimeout = timeout
		return nil
	}
}
