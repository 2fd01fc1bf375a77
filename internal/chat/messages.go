package chat

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/wtask/framechat/internal/chat/registry"
)

const (
	helpMessage = "Available commands:\n" +
		"/name 'NewName' - changes your name\n" +
		"/msg 'ID' 'Message' - personal message\n" +
		"/users - user list\n" +
		"/help - this text\n" +
		"/exit - exit"
	nameUsage   = "Usage: /name 'NewName'"
	msgUsage    = "Usage: /msg 'ID' 'Message'"
	stopMessage = "Server is stopping now, bye"
)

func welcomeMessage(id int) string {
	return "Welcome in chat!\nYour ID: " + strconv.Itoa(id) + "\nEnter /help for command list"
}

func joinMessage(name string) string {
	return "User " + name + " connected to chat"
}

func leaveMessage(name string) string {
	return "User " + name + " left chat"
}

// chatMessage - formats public message of the author.
func chatMessage(author, text string) string {
	return "[" + author + "] " + text
}

func renameMessage(oldName, newName string) string {
	return oldName + " changed name to " + newName
}

func privateMessage(author, text string) string {
	return "[Personally from " + author + "]: " + text
}

func privateAck(target string) string {
	return "Message sent to user " + target
}

func wrongUserID(token string) string {
	return "Wrong user ID: " + token + " not found"
}

// usersMessage - lists connected clients from registry snapshot.
func usersMessage(records []registry.Record) string {
	b := strings.Builder{}
	b.WriteString("Connected users:\n")
	for _, r := range records {
		if !r.Connected {
			continue
		}
		fmt.Fprintf(&b, "ID: %d - %s\n", r.ID, r.Name)
	}
	return b.String()
}

// formatAddress - formats specified network address for logging purposes.
func formatAddress(a net.Addr) string {
	if a == nil {
		return "unknown address"
	}
	return fmt.Sprintf("%s %s", a.Network(), a.String())
}
