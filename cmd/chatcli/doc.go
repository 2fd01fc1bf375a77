// Package `chatcli` implements console client of TCP chat.
//
// Launch client and enter server address when prompted:
//
//	go run .
//
// or pass it with option:
//
//	go run . -server 127.0.0.1 -port 12345
//
// Every entered line is sent to the chat, /help prints available commands, /exit quits.
package main
