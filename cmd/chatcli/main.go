package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wtask/framechat/internal/chat/client"
	"github.com/wtask/framechat/internal/chat/frame"
)

func main() {
	input := bufio.NewScanner(os.Stdin)

	server := Config.Server
	if server == "" {
		fmt.Print("Enter server IP (empty for localhost): ")
		if input.Scan() {
			server = input.Text()
		}
	}
	ip, err := client.ResolveServerIP(server)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	c, err := client.Dial(ctx, net.JoinHostPort(ip, strconv.FormatUint(uint64(Config.Port), 10)))
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR", "Connect failed:", err)
		os.Exit(1)
	}
	defer c.Close()
	fmt.Println("Connected to server!")

	lost := make(chan struct{})
	go receive(c, lost)

	lines := make(chan string)
	go func() {
		defer close(lines)
		for input.Scan() {
			lines <- input.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-lost:
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := c.Send(line); err != nil {
				fmt.Fprintln(os.Stderr, "ERR", "Can't send message:", err)
				return
			}
			if line == "/exit" {
				return
			}
		}
	}
}

// receive - prints server messages until connection is closed.
func receive(c *client.Client, lost chan<- struct{}) {
	defer close(lost)
	for {
		m, err := c.Receive()
		if err != nil {
			if !frame.IsClosed(err) {
				fmt.Fprintln(os.Stderr, "\nERR", err)
			}
			fmt.Println("\nConnection lost!")
			return
		}
		fmt.Printf("\n%s\n> ", m)
	}
}
