package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wtask/framechat/pkg/semver"
)

type (
	// Configuration - server configuration
	Configuration struct {
		// IPAddress - bind the address
		IPAddress string
		// Port - bind the port
		Port uint
		// ClientIdleTimeout - idle period before client is disconnected, 0 means no limit
		ClientIdleTimeout time.Duration
		// WriteTimeout - limit for delivery of single message to a client
		WriteTimeout time.Duration
		// MaxFrameSize - max size of incoming message in bytes
		MaxFrameSize int
		// HistorySize - num of public messages which are kept in memory
		HistorySize int
		// ClientHistoryGreets - num of messages from chat history which is pushed to newly connected client
		ClientHistoryGreets int
		// HTTPAddress - address of admin API and WebSocket gateway, empty value disables HTTP
		HTTPAddress string
		// ShutdownTimeout - max time to wait for clients on stop
		ShutdownTimeout time.Duration
	}
)

var (
	// Config - current configuration of the server
	Config = Configuration{
		IPAddress:           "",
		Port:                12345,
		ClientIdleTimeout:   0,
		WriteTimeout:        30 * time.Second,
		MaxFrameSize:        64 << 10,
		HistorySize:         100,
		ClientHistoryGreets: 0,
		HTTPAddress:         "",
		ShutdownTimeout:     10 * time.Second,
	}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Minor: 4, Patch: 1}.String()

	// buildVersion - overrides Version, set with -ldflags "-X main.buildVersion=..."
	buildVersion = ""
)

func init() {
	out := flag.CommandLine.Output()
	printUsage := func() {
		fmt.Fprintf(out, "Launch text chat server over TCP\n\n\t%s [options]\nOptions:\n\n", BinaryName)
		flag.PrintDefaults()
		fmt.Fprint(out, "\n")
	}
	printError := func(msg string) {
		fmt.Fprintf(out, "%s (v%s) error:\n\n\t%s\n", BinaryName, Version, msg)
	}

	if buildVersion != "" {
		v, err := semver.Parse(buildVersion)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}
		Version = v.String()
	}

	help := false
	flag.BoolVar(&help, "help", false, "Print usage help")
	flag.StringVar(&Config.IPAddress, "ip", Config.IPAddress, "Listen address")
	flag.UintVar(&Config.Port, "port", Config.Port, "Listen port")
	clientTTL := 0
	flag.IntVar(&clientTTL, "client-timeout", clientTTL, "Idle duration in seconds before client is disconnected, 0 disables the limit.")
	writeTTL := int(Config.WriteTimeout / time.Second)
	flag.IntVar(&writeTTL, "write-timeout", writeTTL, "Seconds to deliver single message to a client, 0 disables the limit.")
	flag.IntVar(&Config.MaxFrameSize, "max-frame", Config.MaxFrameSize, "Max size of incoming message in bytes.")
	flag.IntVar(&Config.HistorySize, "history-size", Config.HistorySize, "Num of public messages kept in chat history, 0 disables history.")
	flag.IntVar(
		&Config.ClientHistoryGreets,
		"history-greets",
		Config.ClientHistoryGreets,
		"Num of messages from chat history which is pushed to newly connected client.",
	)
	flag.StringVar(&Config.HTTPAddress, "http", Config.HTTPAddress, "Listen address of admin API and WebSocket gateway, e.g. :8080. Empty value disables HTTP.")
	stopTTL := int(Config.ShutdownTimeout / time.Second)
	flag.IntVar(&stopTTL, "shutdown-timeout", stopTTL, "Seconds to wait for clients on server stop.")

	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	switch {
	case Config.Port == 0 || Config.Port > 65535:
		printError("port value should be in range 1-65535")
		os.Exit(1)
	case clientTTL < 0:
		printError("client-timeout value should be greater or equal 0")
		os.Exit(1)
	case writeTTL < 0:
		printError("write-timeout value should be greater or equal 0")
		os.Exit(1)
	case Config.MaxFrameSize < 1:
		printError("max-frame value should be greater 0")
		os.Exit(1)
	case Config.HistorySize < 0:
		printError("history-size value should be greater or equal 0")
		os.Exit(1)
	case Config.ClientHistoryGreets < 0:
		printError("history-greets value should be greater or equal 0")
		os.Exit(1)
	case Config.ClientHistoryGreets > Config.HistorySize:
		printError("history-greets value should not exceed history-size")
		os.Exit(1)
	case stopTTL < 1:
		printError("shutdown-timeout value should be greater 0")
		os.Exit(1)
	}
	Config.ClientIdleTimeout = time.Duration(clientTTL) * time.Second
	Config.WriteTimeout = time.Duration(writeTTL) * time.Second
	Config.ShutdownTimeout = time.Duration(stopTTL) * time.Second

	fmt.Fprint(out, "TCP chat server is launching, press Ctrl-C to stop...\n")
}
