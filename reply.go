package main

import "fmt"

// Numeric reply codes.
const (
	rplWelcome    = "001"
	rplNoTopic    = "331"
	rplTopic      = "332"
	rplInviting   = "341"
	rplNamReply   = "353"
	rplEndOfNames = "366"
	errNoSuchNick = "401"
	errNoSuchChan = "403"
	errNickInUse  = "433"
	errNotOnChan  = "442"
	errUserOnChan = "443"
	errNeedMoreP  = "461"
	errAlreadyReg = "462"
	errPasswdMis  = "464"
	errChanFull   = "471"
	errInviteOnly = "473"
	errBadChanKey = "475"
	errChanOPriv  = "482"
)

// numeric builds a complete "<numeric> <nick> <fields...> :<text>" reply
// line, prefixed with the server source and CRLF-terminated. fields are
// joined with spaces and placed between nick and the trailing text; pass
// nil/empty for numerics with no middle fields.
func (s *server) numeric(code, nick string, fields []string, text string) string {
	out := ":" + s.cfg.name + " " + code + " " + nick
	for _, f := range fields {
		out += " " + f
	}
	out += " :" + text + "\r\n"
	return out
}

// sourcePrefix builds the ":<nick>!<user>@<server> " prefix used on
// broadcast command echoes, falling back to placeholders for an
// incompletely-registered connection (defensive; should not occur for any
// connection able to issue a broadcasting command).
func sourcePrefix(serverName, nick, user string) string {
	if nick == "" {
		nick = "*"
	}
	if user == "" {
		user = "user"
	}
	return ":" + nick + "!" + user + "@" + serverName + " "
}

func replyWelcome(s *server, nick string) string {
	return s.numeric(rplWelcome, nick, nil, "Welcome to ft_irc, "+nick)
}

func replyNoTopic(s *server, nick, chanName string) string {
	return s.numeric(rplNoTopic, nick, []string{chanName}, "No topic is set")
}

func replyTopic(s *server, nick, chanName, topic string) string {
	return s.numeric(rplTopic, nick, []string{chanName}, topic)
}

func replyInviting(s *server, nick, target, chanName string) string {
	return ":" + s.cfg.name + " " + rplInviting + " " + nick + " " + target + " " + chanName + "\r\n"
}

func replyNamReply(s *server, nick, chanName, names string) string {
	return s.numeric(rplNamReply, nick, []string{"=", chanName}, names)
}

func replyEndOfNames(s *server, nick, chanName string) string {
	return s.numeric(rplEndOfNames, nick, []string{chanName}, "End of /NAMES list.")
}

func errNoSuchNickReply(s *server, nick, target string) string {
	return s.numeric(errNoSuchNick, nick, []string{target}, "No such nick")
}

func errNoSuchChanReply(s *server, nick, chanName string) string {
	return s.numeric(errNoSuchChan, nick, []string{chanName}, "No such channel")
}

func errNickInUseReply(s *server, offendingNick string) string {
	return s.numeric(errNickInUse, "*", []string{offendingNick}, "Nickname is already in use")
}

func errNotOnChanReply(s *server, nick, chanName string) string {
	return s.numeric(errNotOnChan, nick, []string{chanName}, "You're not on that channel")
}

func errUserOnChanReply(s *server, nick, user, chanName string) string {
	return s.numeric(errUserOnChan, nick, []string{user, chanName}, "is already on channel")
}

func errNeedMoreParamsReply(s *server, nick, cmd string) string {
	return s.numeric(errNeedMoreP, nick, []string{cmd}, "Not enough parameters")
}

func errAlreadyRegReply(s *server, nick string) string {
	return s.numeric(errAlreadyReg, nick, nil, "You may not reregister")
}

func errPasswdMismatchReply(s *server, nick string) string {
	return s.numeric(errPasswdMis, nick, nil, "Password incorrect")
}

func errChanFullReply(s *server, nick, chanName string) string {
	return s.numeric(errChanFull, nick, []string{chanName}, "Cannot join channel (+l)")
}

func errInviteOnlyReply(s *server, nick, chanName string) string {
	return s.numeric(errInviteOnly, nick, []string{chanName}, "Cannot join channel (+i)")
}

func errBadChanKeyReply(s *server, nick, chanName string) string {
	return s.numeric(errBadChanKey, nick, []string{chanName}, "Cannot join channel (+k)")
}

func errChanOPrivReply(s *server, nick, chanName string) string {
	return s.numeric(errChanOPriv, nick, []string{chanName}, "You're not channel operator")
}

// pingReply builds the PONG response for PING.
func pingReply(serverName, token string) string {
	return fmt.Sprintf(":%s PONG %s :%s\r\n", serverName, serverName, token)
}
