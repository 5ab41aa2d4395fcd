package main

// channel tracks membership, operator and invite sets, topic, and the mode
// subset {invite_only, topic_op_only, has_key, has_limit}. Handles are
// weak references into the server's connection map; a channel never
// extends a connection's lifetime.
type channel struct {
	name  string // canonical, always "#"-prefixed
	topic string

	inviteOnly  bool
	topicOpOnly bool
	hasKey      bool
	key         string
	hasLimit    bool
	limit       int

	members   map[handle]struct{}
	operators map[handle]struct{}
	invited   map[handle]struct{}
}

func newChannel(name string) *channel {
	return &channel{
		name:      name,
		members:   make(map[handle]struct{}),
		operators: make(map[handle]struct{}),
		invited:   make(map[handle]struct{}),
	}
}

func (c *channel) isMember(h handle) bool {
	_, ok := c.members[h]
	return ok
}

func (c *channel) isOperator(h handle) bool {
	_, ok := c.operators[h]
	return ok
}

func (c *channel) isInvited(h handle) bool {
	_, ok := c.invited[h]
	return ok
}

func (c *channel) addMember(h handle) {
	c.members[h] = struct{}{}
}

// removeMember also drops h from operators and invites; idempotent.
func (c *channel) removeMember(h handle) {
	delete(c.members, h)
	delete(c.operators, h)
	delete(c.invited, h)
}

func (c *channel) addOperator(h handle) {
	c.operators[h] = struct{}{}
}

func (c *channel) removeOperator(h handle) {
	delete(c.operators, h)
}

func (c *channel) addInvite(h handle) {
	c.invited[h] = struct{}{}
}

func (c *channel) clearInvite(h handle) {
	delete(c.invited, h)
}

func (c *channel) memberCount() int {
	return len(c.members)
}

func (c *channel) setKey(k string) {
	c.hasKey = true
	c.key = k
}

func (c *channel) clearKey() {
	c.hasKey = false
	c.key = ""
}

func (c *channel) setLimit(l int) {
	c.hasLimit = true
	c.limit = l
}

func (c *channel) clearLimit() {
	c.hasLimit = false
	c.limit = 0
}
