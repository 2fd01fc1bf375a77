package chat

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/wtask/framechat/internal/chat/frame"
	"github.com/wtask/framechat/internal/chat/message"
	"github.com/wtask/framechat/internal/chat/registry"
)

// partReason - describes the type of parting with client.
type partReason int

const (
	_ partReason = iota
	// partLeft - client has sent /exit or closed the connection.
	partLeft
	// partTimeout - client was idle longer than read timeout.
	partTimeout
	// partViolation - client has sent malformed or oversized frame.
	partViolation
	// partFailure - connection is broken by unexpected error.
	partFailure
	// partShutdown - server is stopping.
	partShutdown
)

func (r partReason) String() string {
	switch r {
	case partLeft:
		return "left"
	case partTimeout:
		return "timed out"
	case partViolation:
		return "violated protocol"
	case partFailure:
		return "failed"
	case partShutdown:
		return "server shutdown"
	default:
		return "unknown part reason"
	}
}

// connection - handler state of single client.
// It exclusively owns the transport from greeting till the client is removed from registry.
type connection struct {
	server    *Server
	id        int
	transport registry.Transport
}

// greet - welcomes the client and notifies others about it.
func (c *connection) greet() {
	s := c.server
	record, _ := s.clients.Lookup(c.id)
	logInfo(
		s.logger,
		"Client connected:", record.Remote, record.Name,
		fmt.Sprintf("(ID: %d, session %s)", c.id, record.Session),
		"Total clients:", s.clients.Count(),
	)

	// history replay and joining the live chat are atomic
	s.clients.Admit(c.id, func() []string {
		lines := []string{welcomeMessage(c.id)}
		for _, entry := range historyTail(s.history, s.historyGreets) {
			lines = append(lines, entry.Line)
		}
		return lines
	})
	s.announce(joinMessage(record.Name), c.id)
}

// serve - reads client messages until the client is gone and returns the reason.
func (c *connection) serve() partReason {
	s := c.server
	for {
		payload, err := c.transport.ReadFrame()
		if err != nil {
			return c.classify(err)
		}
		text := message.Clean(payload)
		if text == "" {
			continue
		}
		logInfo(s.logger, fmt.Sprintf("[%d] %s", c.id, text))

		if strings.HasPrefix(text, "/") {
			s.dispatch(c.id, text)
		} else {
			s.announce(chatMessage(s.clients.Name(c.id), text), c.id)
		}

		if text == exitCommand {
			return partLeft
		}
	}
}

// classify - converts read error into part reason.
// Peer disconnection is an expected condition and is not logged as an error.
func (c *connection) classify(err error) partReason {
	s := c.server
	var netErr net.Error
	switch {
	case s.scope.Expired():
		return partShutdown
	case frame.IsClosed(err):
		return partLeft
	case errors.Is(err, frame.ErrTooLarge), errors.Is(err, frame.ErrInvalidLength):
		logError(s.logger, "Client", c.id, "sent invalid frame:", err)
		return partViolation
	case errors.As(err, &netErr) && netErr.Timeout():
		return partTimeout
	default:
		logError(s.logger, "Client", c.id, "read failed:", err)
		return partFailure
	}
}

// part - releases the client: notifies others, closes transport and forgets the client.
func (c *connection) part(reason partReason) {
	s := c.server
	s.clients.Disconnect(c.id)
	name := s.clients.Name(c.id)
	if reason != partShutdown {
		s.announce(leaveMessage(name), registry.NoExclude)
	}
	c.transport.Close()
	s.clients.Remove(c.id)
	logInfo(s.logger, fmt.Sprintf("Client disconnected: ID %d (%s)", c.id, reason))
}
