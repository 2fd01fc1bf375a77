package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/wtask/framechat/internal/chat/frame"
)

func TestResolveServerIP(test *testing.T) {
	cases := []struct {
		input, expected string
		valid           bool
	}{
		{"", "127.0.0.1", true},
		{"localhost", "127.0.0.1", true},
		{" localhost ", "127.0.0.1", true},
		{"192.168.0.10", "192.168.0.10", true},
		{"999.999.999.999", "999.999.999.999", true}, // octet range is not checked
		{"10.0.0", "", false},
		{"10.0.0.1.5", "", false},
		{"10..0.1", "", false},
		{"10.0.0.x", "", false},
		{"-1.0.0.1", "", false},
		{"example.com", "", false},
	}
	for _, c := range cases {
		actual, err := ResolveServerIP(c.input)
		if c.valid && (err != nil || actual != c.expected) {
			test.Errorf("ResolveServerIP(%q): expected %q, actual %q, error %v", c.input, c.expected, actual, err)
		}
		if !c.valid && !errors.Is(err, ErrInvalidAddress) {
			test.Errorf("ResolveServerIP(%q): expected ErrInvalidAddress, actual %q, %v", c.input, actual, err)
		}
	}
}

func TestClient(test *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		test.Fatal("Unable to listen:", err)
	}
	defer listener.Close()

	// echo server
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			p, err := frame.Read(conn, frame.DefaultMaxSize)
			if err != nil {
				return
			}
			frame.Write(conn, p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c, err := Dial(ctx, listener.Addr().String(), frame.WithReadTimeout(time.Second))
	if err != nil {
		test.Fatal("Dial: unexpected error", err)
	}
	if err := c.Send("echo"); err != nil {
		test.Fatal("Send: unexpected error", err)
	}
	if m, err := c.Receive(); err != nil || m != "echo" {
		test.Error("Receive: unexpected result", m, err)
	}
	c.Close()
	if _, err := c.Receive(); !frame.IsClosed(err) {
		test.Error("Receive after Close: expected closed error, got", err)
	}
}
