package push

import (
	"log/slog"
	"sync"
)

// Session is one live push connection. Send must not block: it reports false
// when the member's queue is full or closed, and the hub drops the member.
type Session interface {
	Send(payload []byte) bool
	Close()
}

// Hub maps tenants to multicast groups of live connections. Membership is
// runtime-only state: nothing is persisted and everything is lost on restart.
// Each group carries its own lock so tenant A traffic never contends with
// tenant B; there is no lock spanning tenants.
type Hub struct {
	groups  sync.Map // tenant id string → *group
	members sync.Map // Session → tenant id string
	logger  *slog.Logger
}

type group struct {
	mu sync.RWMutex
	// closed marks a group that was emptied and unlinked from the hub; a
	// concurrent Join that still holds it must retry with a fresh group.
	closed  bool
	members map[Session]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger}
}

// Join adds the session to the tenant's group, creating the group on first
// join. A session belongs to at most one group; joining again moves it.
func (h *Hub) Join(s Session, tenantID string) {
	if prev, ok := h.members.Load(s); ok && prev.(string) != tenantID {
		h.Leave(s)
	}

	for {
		g := h.loadOrCreateGroup(tenantID)
		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			continue
		}
		g.members[s] = struct{}{}
		g.mu.Unlock()

		h.members.Store(s, tenantID)
		h.logger.Debug("connection joined tenant group", slog.String("tenant_id", tenantID))
		return
	}
}

// Leave removes the session from whatever group it belongs to. Safe to call
// redundantly; invoked on disconnect.
func (h *Hub) Leave(s Session) {
	tenantID, ok := h.members.LoadAndDelete(s)
	if !ok {
		return
	}

	v, ok := h.groups.Load(tenantID)
	if !ok {
		return
	}
	g := v.(*group)

	g.mu.Lock()
	delete(g.members, s)
	if len(g.members) == 0 {
		g.closed = true
		h.groups.CompareAndDelete(tenantID, v)
	}
	g.mu.Unlock()
}

// Broadcast delivers the payload to every connection currently in the
// tenant's group. No ack, no retry, no queuing for absent members: an empty
// or missing group is a no-op, and a member that cannot keep up is dropped.
func (h *Hub) Broadcast(tenantID string, payload []byte) {
	v, ok := h.groups.Load(tenantID)
	if !ok {
		return
	}
	g := v.(*group)

	var dropped []Session
	g.mu.RLock()
	for s := range g.members {
		if !s.Send(payload) {
			dropped = append(dropped, s)
		}
	}
	g.mu.RUnlock()

	for _, s := range dropped {
		h.logger.Warn("dropping slow push connection", slog.String("tenant_id", tenantID))
		h.Leave(s)
		s.Close()
	}
}

// GroupSize reports the current member count of a tenant's group.
func (h *Hub) GroupSize(tenantID string) int {
	v, ok := h.groups.Load(tenantID)
	if !ok {
		return 0
	}
	g := v.(*group)

	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members)
}

func (h *Hub) loadOrCreateGroup(tenantID string) *group {
	if v, ok := h.groups.Load(tenantID); ok {
		return v.(*group)
	}
	v, _ := h.groups.LoadOrStore(tenantID, &group{members: make(map[Session]struct{})})
	return v.(*group)
}
