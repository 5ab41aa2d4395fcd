package main

import "testing"

func newTestServer() *server {
	return newServer(serverConfig{name: "ft_irc.min", port: 6667, password: "pw"})
}

// register installs a fully-registered connection under handle h without
// going through the reactor or any socket.
func register(s *server, h handle, nick string) *connection {
	c := newConnection(h)
	c.user = "u"
	c.passwordOK = true
	c.registered = true
	c.nick = nick
	s.conns[h] = c
	s.setNick(h, "", nick)
	return c
}

func TestJoinCreatorOp(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")
	bob := register(s, 2, "bob")

	cmdJOIN(s, alice, []string{"chan"})
	ch := s.findChannel("#chan")
	if ch == nil {
		t.Fatalf("channel not created")
	}
	if !ch.isOperator(alice.h) {
		t.Errorf("first joiner should be operator")
	}

	cmdJOIN(s, bob, []string{"chan"})
	if ch.isOperator(bob.h) {
		t.Errorf("second joiner should not be operator")
	}
	if !ch.isMember(bob.h) {
		t.Errorf("second joiner should be a member")
	}
}

func TestModeParseDeterminism(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")
	bob := register(s, 2, "bob")

	cmdJOIN(s, alice, []string{"chan"})
	cmdJOIN(s, bob, []string{"chan"})
	ch := s.findChannel("#chan")

	cmdMODE(s, alice, []string{"chan", "+itkol", "key", "bob", "5"})
	if !ch.inviteOnly {
		t.Errorf("expected +i set")
	}
	if !ch.topicOpOnly {
		t.Errorf("expected +t set")
	}
	if !ch.hasKey || ch.key != "key" {
		t.Errorf("expected key set to %q, got hasKey=%v key=%q", "key", ch.hasKey, ch.key)
	}
	if !ch.isOperator(bob.h) {
		t.Errorf("expected bob granted operator")
	}
	if !ch.hasLimit || ch.limit != 5 {
		t.Errorf("expected limit set to 5, got hasLimit=%v limit=%d", ch.hasLimit, ch.limit)
	}

	cmdMODE(s, alice, []string{"chan", "-k"})
	if ch.hasKey {
		t.Errorf("expected -k to clear the key")
	}
}

func TestModeOperatorRequiresMembership(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")
	register(s, 2, "carol") // not a member of #chan

	cmdJOIN(s, alice, []string{"chan"})
	ch := s.findChannel("#chan")

	cmdMODE(s, alice, []string{"chan", "+o", "carol"})
	if ch.isOperator(2) {
		t.Errorf("+o must not grant operator to a non-member")
	}
	if ch.isMember(2) {
		t.Errorf("+o must not implicitly add the target as a member")
	}
}

func TestEmptyChannelGC(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")

	cmdJOIN(s, alice, []string{"chan"})
	if s.findChannel("#chan") == nil {
		t.Fatalf("channel should exist after join")
	}

	cmdPART(s, alice, []string{"#chan"})
	if s.findChannel("#chan") != nil {
		t.Errorf("channel should be gone after its last member parts")
	}
}

func TestBroadcastExclusion(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")
	bob := register(s, 2, "bob")
	cmdJOIN(s, alice, []string{"chan"})
	cmdJOIN(s, bob, []string{"chan"})

	aliceBefore := alice.out.len()
	cmdPRIVMSG(s, alice, []string{"#chan", "hi"})

	if alice.out.len() != aliceBefore {
		t.Errorf("sender should not receive its own channel message")
	}
	if bob.out.len() == 0 {
		t.Errorf("other member should receive the channel message")
	}
}

func TestCaseFoldingDelivery(t *testing.T) {
	s := newTestServer()
	alice := register(s, 1, "alice")
	bob := register(s, 2, "bob")

	cmdJOIN(s, alice, []string{"Foo"})
	cmdJOIN(s, bob, []string{"foo"})

	before := bob.out.len()
	cmdPRIVMSG(s, alice, []string{"#foo", "hi"})
	if bob.out.len() == before {
		t.Errorf("expected case-insensitive channel delivery")
	}
}
