package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtask/framechat/internal/chat/client"
	"github.com/wtask/framechat/pkg/semver"
)

type (
	// Configuration - client configuration
	Configuration struct {
		// Server - IPv4 address of chat server, asked interactively when empty
		Server string
		// Port - server port
		Port uint
	}
)

var (
	// Config - current configuration of the client
	Config = Configuration{
		Server: "",
		Port:   client.DefaultPort,
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
		fmt.Fprintf(out, "Console client of TCP chat\n\n\t%s [options]\nOptions:\n\n", BinaryName)
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
	flag.StringVar(&Config.Server, "server", "", "Server IPv4 address or localhost. Asked on start when omitted.")
	flag.UintVar(&Config.Port, "port", Config.Port, "Server port")

	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}
	if Config.Port == 0 || Config.Port > 65535 {
		printError("port value should be in range 1-65535")
		os.Exit(1)
	}
}
