package chat

import (
	"strconv"
	"strings"

	"github.com/wtask/framechat/internal/chat/registry"
)

const (
	exitCommand  = "/exit"
	nameCommand  = "/name "
	msgCommand   = "/msg "
	usersCommand = "/users"
	helpCommand  = "/help"
)

// dispatch - executes slash command of the client.
// Unknown commands (and /exit, which is handled by connection) are silently ignored.
func (s *Server) dispatch(id int, command string) {
	switch {
	case strings.HasPrefix(command, nameCommand):
		s.rename(id, command[len(nameCommand):])
	case strings.HasPrefix(command, msgCommand):
		s.sendPrivate(id, command[len(msgCommand):])
	case command == usersCommand:
		s.clients.SendTo(id, usersMessage(s.clients.Snapshot()))
	case command == helpCommand:
		s.clients.SendTo(id, helpMessage)
	}
}

func (s *Server) rename(id int, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.clients.SendTo(id, nameUsage)
		return
	}
	oldName := s.clients.Name(id)
	s.clients.SetName(id, name)
	s.announce(renameMessage(oldName, name), registry.NoExclude)
}

// sendPrivate - handles "<targetID> <text>" arguments of /msg.
// Sender receives acknowledgement even if the target does not exist.
func (s *Server) sendPrivate(id int, args string) {
	token, text, ok := strings.Cut(args, " ")
	if !ok {
		s.clients.SendTo(id, msgUsage)
		return
	}
	target, err := strconv.Atoi(token)
	if err != nil {
		s.clients.SendTo(id, wrongUserID(token))
		return
	}
	if !s.clients.SendTo(target, privateMessage(s.clients.Name(id), text)) {
		logInfo(s.logger, "Private message from", id, "to", target, "is not delivered")
	}
	s.clients.SendTo(id, privateAck(token))
}
