// Package `chatsrv` implements server application for chat over TCP.
//
// Every message is sent as a length-prefixed frame, see package internal/chat/frame.
// With -http option the server also exposes read-only admin API and WebSocket
// endpoint, so browser clients can join the same chat.
//
// To compile chat server locally, run from package directory:
//
//	go install .
//
// Or quickly launch server with command:
//
//	go run . -port 12345 -http :8080
package main
