package frame

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"time"
)

// Conn - frame-oriented wrapper of net.Conn.
// Reads are expected from single goroutine, writes are safe for concurrent use.
type Conn struct {
	conn    net.Conn
	reader  *bufio.Reader
	maxSize int
	readTimeout,
	writeTimeout time.Duration

	wmu       sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// ConnOption - optional setting of Conn.
type ConnOption func(c *Conn) error

// WithMaxSize - overwrites default limit of incoming payload size.
func WithMaxSize(size int) ConnOption {
	return func(c *Conn) error {
		if size <= 0 {
			return fmt.Errorf("frame.WithMaxSize: invalid size (%d)", size)
		}
		c.maxSize = size
		return nil
	}
}

// WithReadTimeout - sets idle period for every ReadFrame call, zero disables it.
func WithReadTimeout(timeout time.Duration) ConnOption {
	return func(c *Conn) error {
		if timeout < 0 {
			return fmt.Errorf("frame.WithReadTimeout: invalid timeout (%v)", timeout)
		}
		c.readTimeout = timeout
		return nil
	}
}

// WithWriteTimeout - sets deadline for every WriteFrame call, zero disables it.
func WithWriteTimeout(timeout time.Duration) ConnOption {
	return func(c *Conn) error {
		if timeout < 0 {
			return fmt.Errorf("frame.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		c.writeTimeout = timeout
		return nil
	}
}

// NewConn - wraps network connection. On error the connection is left untouched.
func NewConn(conn net.Conn, options ...ConnOption) (*Conn, error) {
	if conn == nil {
		return nil, fmt.Errorf("frame.NewConn: net.Conn is nil")
	}
	c := &Conn{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		maxSize: DefaultMaxSize,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ReadFrame - blocks until the next complete frame has arrived.
func (c *Conn) ReadFrame() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}
	return Read(c.reader, c.maxSize)
}

// WriteFrame - sends payload as single frame.
func (c *Conn) WriteFrame(payload []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return Write(c.conn, payload)
}

// Close - closes underlying connection. Repeated calls return the result of the first one.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// RemoteAddr - returns remote network address of underlying connection.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
