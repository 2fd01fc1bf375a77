package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wtask/framechat/internal/chat"
	"github.com/wtask/framechat/internal/chat/history"
	"github.com/wtask/framechat/internal/chat/web"
)

func main() {
	logger := stdlog.New(os.Stdout, "chatsrv:"+Version+" ", stdlog.Ldate|stdlog.Ltime)
	logger.Printf("Started with config: %+v", Config)

	node := net.JoinHostPort(Config.IPAddress, fmt.Sprintf("%d", Config.Port))
	listener, err := net.Listen("tcp", node)
	if err != nil {
		logger.Println("ERR", "Unable to listen TCP:", err)
		os.Exit(1)
	}

	options := []chat.ServerOption{
		chat.WithLogger(logger),
		chat.WithMaxFrameSize(Config.MaxFrameSize),
		chat.WithReadTimeout(Config.ClientIdleTimeout),
		chat.WithWriteTimeout(Config.WriteTimeout),
	}
	if Config.HistorySize > 0 {
		stack, err := history.NewStack(Config.HistorySize)
		if err != nil {
			logger.Println("ERR", "Invalid config:", err)
			listener.Close()
			os.Exit(1)
		}
		options = append(options, chat.WithMessageHistory(stack, Config.ClientHistoryGreets))
	}

	server, err := chat.NewServer(options...)
	if err != nil {
		logger.Println("ERR", "Can't start chat server:", err)
		listener.Close()
		os.Exit(1)
	}

	var gateway *http.Server
	if Config.HTTPAddress != "" {
		gateway = &http.Server{
			Addr:              Config.HTTPAddress,
			Handler:           web.NewRouter(server, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Println("HTTP listen", Config.HTTPAddress)
			if err := gateway.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Println("ERR", "HTTP server failed:", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	served := make(chan error, 1)
	go func() {
		served <- server.Serve(listener)
	}()
	logger.Println("Chat server has started.")

	select {
	case s := <-sig:
		logger.Println("Got stop signal:", s)
	case err := <-served:
		logger.Println("ERR", "Chat server stopped unexpectedly:", err)
	}

	if gateway != nil {
		ctx, cancel := context.WithTimeout(context.Background(), Config.ShutdownTimeout)
		if err := gateway.Shutdown(ctx); err != nil {
			logger.Println("ERR", "HTTP shutdown:", err)
		}
		cancel()
	}
	logger.Println("Chat server stopped in", server.Shutdown(Config.ShutdownTimeout), ", bye")
}
