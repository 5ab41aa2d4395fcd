package main

import "strconv"

// handlerFunc is one command handler: server state, the originating
// connection, and the already-parsed parameter list.
type handlerFunc func(s *server, c *connection, params []string)

// registrationRequired marks every handler except PASS, NICK, USER, PING,
// QUIT as needing a registered connection; unregistered callers are
// dropped silently per the common preconditions.
var registrationRequired = map[string]bool{
	"join":    true,
	"part":    true,
	"privmsg": true,
	"mode":    true,
	"topic":   true,
	"invite":  true,
	"kick":    true,
}

// minArity is the minimum parameter count per command; a shortage sends
// 461 with the command name.
var minArity = map[string]int{
	"pass":    1,
	"nick":    1,
	"user":    4,
	"join":    1,
	"part":    1,
	"privmsg": 2,
	"mode":    1,
	"topic":   1,
	"invite":  2,
	"kick":    2,
	"ping":    0,
	"quit":    0,
}

var handlers = map[string]handlerFunc{
	"pass":    cmdPASS,
	"nick":    cmdNICK,
	"user":    cmdUSER,
	"join":    cmdJOIN,
	"part":    cmdPART,
	"privmsg": cmdPRIVMSG,
	"mode":    cmdMODE,
	"topic":   cmdTOPIC,
	"invite":  cmdINVITE,
	"kick":    cmdKICK,
	"ping":    cmdPING,
	"quit":    cmdQUIT,
}

// dispatch parses one already-framed line and routes it to its handler.
// Unknown commands are silently dropped, as are commands from a connection
// that isn't (yet) registered when registration is required.
func (s *server) dispatch(c *connection, line string) {
	cmd := parseLine(line)
	name := foldASCII(cmd.name)
	if name == "" {
		return
	}

	h, ok := handlers[name]
	if !ok {
		return
	}

	if registrationRequired[name] && !c.registered {
		return
	}

	if need, ok := minArity[name]; ok && len(cmd.params) < need {
		s.sendToClient(c.h, errNeedMoreParamsReply(s, displayNick(c), cmd.name))
		return
	}

	h(s, c, cmd.params)
}

func displayNick(c *connection) string {
	if c.nick == "" {
		return "*"
	}
	return c.nick
}

// maybeFinalize promotes a connection to registered once PASS, NICK and
// USER have all succeeded, sending the welcome numeric.
func maybeFinalize(s *server, c *connection) {
	if !c.canFinalize() {
		return
	}
	c.registered = true
	s.sendToClient(c.h, replyWelcome(s, c.nick))
}

func cmdPASS(s *server, c *connection, params []string) {
	if c.registered {
		s.sendToClient(c.h, errAlreadyRegReply(s, displayNick(c)))
		return
	}
	if params[0] == s.cfg.password {
		c.passwordOK = true
	} else {
		s.sendToClient(c.h, errPasswdMismatchReply(s, displayNick(c)))
	}
	maybeFinalize(s, c)
}

func cmdNICK(s *server, c *connection, params []string) {
	newNick := params[0]
	if !isValidNick(newNick) {
		s.sendToClient(c.h, errNickInUseReply(s, newNick))
		return
	}
	if existing := s.getClientByNick(newNick); existing != nil && existing.h != c.h {
		s.sendToClient(c.h, errNickInUseReply(s, newNick))
		return
	}

	old := c.nick
	c.nick = newNick
	s.setNick(c.h, old, newNick)
	maybeFinalize(s, c)
}

func cmdUSER(s *server, c *connection, params []string) {
	if c.registered {
		s.sendToClient(c.h, errAlreadyRegReply(s, displayNick(c)))
		return
	}
	c.user = params[0]
	c.realname = params[3]
	maybeFinalize(s, c)
}

func cmdPING(s *server, c *connection, params []string) {
	token := "token"
	if len(params) > 0 {
		token = params[0]
	}
	s.sendToClient(c.h, pingReply(s.cfg.name, token))
}

// cmdQUIT implements the quit-as-part quirk: a first param starting with
// '#' is treated exactly as PART, leaving the connection open. Otherwise
// the connection is disconnected with the given (or default) reason.
func cmdQUIT(s *server, c *connection, params []string) {
	if len(params) > 0 && len(params[0]) > 0 && params[0][0] == '#' {
		cmdPART(s, c, params)
		return
	}
	reason := "Quit"
	if len(params) > 0 {
		reason = params[0]
	}
	s.disconnect(c.h, reason)
}

// parsePositiveInt parses a decimal, positive integer; used for the +l
// channel limit argument.
func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
