// Package client implements the client side of the chat protocol.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/wtask/framechat/internal/chat/frame"
)

// DefaultPort - well-known port of chat server.
const DefaultPort = 12345

// ErrInvalidAddress - returned by ResolveServerIP for malformed input.
var ErrInvalidAddress = errors.New("client: invalid server address")

// ResolveServerIP - validates user input of server address.
// Empty input and "localhost" mean loopback, otherwise exactly four
// dot-separated non-empty groups of digits are expected. Octet values are not checked.
func ResolveServerIP(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == "localhost" {
		return "127.0.0.1", nil
	}
	parts := strings.Split(input, ".")
	if len(parts) != 4 {
		return "", fmt.Errorf("%w: %q must have 4 parts", ErrInvalidAddress, input)
	}
	for _, p := range parts {
		if p == "" || strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return "", fmt.Errorf("%w: %q contains non-digit part", ErrInvalidAddress, input)
		}
	}
	return input, nil
}

// Client - connection to chat server.
type Client struct {
	conn *frame.Conn
}

// Dial - connects to chat server at address (host:port).
func Dial(ctx context.Context, address string, options ...frame.ConnOption) (*Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("client.Dial: %w", err)
	}
	c, err := frame.NewConn(conn, options...)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("client.Dial: %w", err)
	}
	return &Client{c}, nil
}

// Send - sends single chat message or command.
func (c *Client) Send(text string) error {
	return c.conn.WriteFrame([]byte(text))
}

// Receive - blocks until the next server message.
// Returns io.EOF or io.ErrUnexpectedEOF when the server has closed connection.
func (c *Client) Receive() (string, error) {
	p, err := c.conn.ReadFrame()
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// Close - closes connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
