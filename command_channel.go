package main

// cmdJOIN implements JOIN(chan[, key]). Checks run in order: invite-only,
// key, capacity. The first joiner of a fresh channel becomes its operator.
func cmdJOIN(s *server, c *connection, params []string) {
	chanName := normalizeChannel(params[0])
	key := ""
	if len(params) >= 2 {
		key = params[1]
	}

	ch := s.getOrCreateChannel(chanName)

	if ch.inviteOnly && !ch.isInvited(c.h) {
		s.sendToClient(c.h, errInviteOnlyReply(s, c.nick, chanName))
		return
	}
	if ch.hasKey && ch.key != key {
		s.sendToClient(c.h, errBadChanKeyReply(s, c.nick, chanName))
		return
	}
	if ch.hasLimit && ch.memberCount() >= ch.limit {
		s.sendToClient(c.h, errChanFullReply(s, c.nick, chanName))
		return
	}

	wasEmpty := ch.memberCount() == 0
	ch.addMember(c.h)
	if wasEmpty {
		ch.addOperator(c.h)
	}
	ch.clearInvite(c.h)

	joinLine := c.uhost(s.cfg.name) + "JOIN :" + chanName + "\r\n"
	s.sendToChannel(chanName, c.h, joinLine)
	s.sendToClient(c.h, joinLine)

	if ch.topic != "" {
		s.sendToClient(c.h, replyTopic(s, c.nick, chanName, ch.topic))
	} else {
		s.sendToClient(c.h, replyNoTopic(s, c.nick, chanName))
	}

	names := ""
	for h := range ch.members {
		member := s.getClient(h)
		if member == nil {
			continue
		}
		if names != "" {
			names += " "
		}
		if ch.isOperator(h) {
			names += "@"
		}
		names += member.nick
	}
	s.sendToClient(c.h, replyNamReply(s, c.nick, chanName, names))
	s.sendToClient(c.h, replyEndOfNames(s, c.nick, chanName))
}

// cmdPART implements PART(chan_list[, reason]) over a comma-separated
// channel list, continuing past per-channel errors.
func cmdPART(s *server, c *connection, params []string) {
	reason := "Leaving"
	if len(params) >= 2 {
		reason = params[1]
	}

	for _, raw := range splitNonEmpty(params[0], ',') {
		chanName := normalizeChannel(raw)
		ch := s.findChannel(chanName)
		if ch == nil {
			s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, chanName))
			continue
		}
		if !ch.isMember(c.h) {
			s.sendToClient(c.h, errNotOnChanReply(s, c.nick, chanName))
			continue
		}

		line := c.uhost(s.cfg.name) + "PART " + chanName + " :" + reason + "\r\n"
		s.sendToChannel(chanName, c.h, line)
		s.sendToClient(c.h, line)

		ch.removeMember(c.h)
		s.removeChannelIfEmpty(chanName)
	}
}

// cmdPRIVMSG routes to a channel (broadcast, sender excluded) or a nick
// (direct delivery only).
func cmdPRIVMSG(s *server, c *connection, params []string) {
	target := params[0]
	text := params[1]
	line := c.uhost(s.cfg.name) + "PRIVMSG " + target + " :" + text + "\r\n"

	if len(target) > 0 && target[0] == '#' {
		ch := s.findChannel(target)
		if ch == nil {
			s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, target))
			return
		}
		if !ch.isMember(c.h) {
			s.sendToClient(c.h, errNotOnChanReply(s, c.nick, target))
			return
		}
		s.sendToChannel(target, c.h, line)
		return
	}

	dst := s.getClientByNick(target)
	if dst == nil {
		s.sendToClient(c.h, errNoSuchNickReply(s, c.nick, target))
		return
	}
	s.sendToClient(dst.h, line)
}

// cmdMODE parses flagstr left-to-right against a running +/- sign,
// consuming trailing args per-flag exactly as the source does: 'o' always
// consumes an available arg even when the operation no-ops; 'k' and 'l'
// consume one only on '+' ('l' even when the value is rejected).
func cmdMODE(s *server, c *connection, params []string) {
	chanName := normalizeChannel(params[0])
	ch := s.findChannel(chanName)
	if ch == nil {
		s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, chanName))
		return
	}

	if len(params) == 1 {
		return
	}

	if !ch.isOperator(c.h) {
		s.sendToClient(c.h, errChanOPrivReply(s, c.nick, chanName))
		return
	}

	flags := params[1]
	add := true
	argi := 2
	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case '+':
			add = true
		case '-':
			add = false
		case 'i':
			ch.inviteOnly = add
		case 't':
			ch.topicOpOnly = add
		case 'k':
			if add {
				if argi < len(params) {
					ch.setKey(params[argi])
					argi++
				}
			} else {
				ch.clearKey()
			}
		case 'o':
			if argi < len(params) {
				who := s.getClientByNick(params[argi])
				argi++
				if who != nil {
					if add {
						if ch.isMember(who.h) {
							ch.addOperator(who.h)
						}
					} else {
						ch.removeOperator(who.h)
					}
				}
			}
		case 'l':
			if add {
				if argi < len(params) {
					if lim, ok := parsePositiveInt(params[argi]); ok {
						ch.setLimit(lim)
					}
					argi++
				}
			} else {
				ch.clearLimit()
			}
		}
	}
}

// cmdTOPIC views (one arg) or modifies (two args) a channel's topic.
func cmdTOPIC(s *server, c *connection, params []string) {
	chanName := normalizeChannel(params[0])
	ch := s.findChannel(chanName)
	if ch == nil {
		s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, chanName))
		return
	}

	if len(params) == 1 {
		if ch.topic == "" {
			s.sendToClient(c.h, replyNoTopic(s, c.nick, chanName))
		} else {
			s.sendToClient(c.h, replyTopic(s, c.nick, chanName, ch.topic))
		}
		return
	}

	if ch.topicOpOnly && !ch.isOperator(c.h) {
		s.sendToClient(c.h, errChanOPrivReply(s, c.nick, chanName))
		return
	}

	ch.topic = params[1]
	line := c.uhost(s.cfg.name) + "TOPIC " + chanName + " :" + params[1] + "\r\n"
	s.sendToChannel(chanName, c.h, line)
	s.sendToClient(c.h, line)
}

// cmdINVITE checks channel existence, operator privilege, target
// resolution, then non-membership, in that order.
func cmdINVITE(s *server, c *connection, params []string) {
	targetNick := params[0]
	chanName := normalizeChannel(params[1])

	ch := s.findChannel(chanName)
	if ch == nil {
		s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, chanName))
		return
	}
	if !ch.isOperator(c.h) {
		s.sendToClient(c.h, errChanOPrivReply(s, c.nick, chanName))
		return
	}
	target := s.getClientByNick(targetNick)
	if target == nil {
		s.sendToClient(c.h, errNoSuchNickReply(s, c.nick, targetNick))
		return
	}
	if ch.isMember(target.h) {
		s.sendToClient(c.h, errUserOnChanReply(s, c.nick, target.nick, chanName))
		return
	}

	ch.addInvite(target.h)
	s.sendToClient(c.h, replyInviting(s, c.nick, target.nick, chanName))
	line := c.uhost(s.cfg.name) + "INVITE " + target.nick + " :" + chanName + "\r\n"
	s.sendToClient(target.h, line)
}

// cmdKICK checks channel existence, operator privilege, then target
// membership, in that order; default reason "Kicked".
func cmdKICK(s *server, c *connection, params []string) {
	chanName := normalizeChannel(params[0])
	targetNick := params[1]

	ch := s.findChannel(chanName)
	if ch == nil {
		s.sendToClient(c.h, errNoSuchChanReply(s, c.nick, chanName))
		return
	}
	if !ch.isOperator(c.h) {
		s.sendToClient(c.h, errChanOPrivReply(s, c.nick, chanName))
		return
	}
	target := s.getClientByNick(targetNick)
	if target == nil || !ch.isMember(target.h) {
		s.sendToClient(c.h, errNoSuchNickReply(s, c.nick, targetNick))
		return
	}

	reason := "Kicked"
	if len(params) >= 3 {
		reason = params[2]
	}
	line := c.uhost(s.cfg.name) + "KICK " + chanName + " " + target.nick + " :" + reason + "\r\n"
	s.sendToChannel(chanName, c.h, line)
	s.sendToClient(c.h, line)

	ch.removeMember(target.h)
	s.removeChannelIfEmpty(chanName)
}
