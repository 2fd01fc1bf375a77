// Package registry keeps the directory of chat clients.
//
// Registry is the single source of truth about who is connected, how the client is named
// and which transport reaches it. Every client gets a process-unique integer id,
// ids are allocated monotonically starting from 1 and are never reused.
package registry

import (
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UnknownName - returned by Name for absent ids.
const UnknownName = "Unknown"

// NoExclude - pass to Broadcast to deliver the message to every connected client.
const NoExclude = 0

// Transport - exclusively owned message channel to a single client.
type Transport interface {
	ReadFrame() ([]byte, error)
	WriteFrame(payload []byte) error
	// Close must be safe to call several times.
	Close() error
	RemoteAddr() net.Addr
}

// Record - copy of client state.
type Record struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Session   string    `json:"session"`
	Remote    string    `json:"remote"`
	Connected bool      `json:"connected"`
	Since     time.Time `json:"since"`
}

type client struct {
	Record
	transport Transport
	// admitted clients are reachable by Broadcast and SendTo
	admitted bool
}

type peer struct {
	id        int
	transport Transport
}

// Registry - thread-safe mapping from client id to its state.
type Registry struct {
	mu     sync.Mutex
	lastID int
	list   map[int]*client

	// delivery serializes all outgoing sends, so every client observes broadcasts in the same order.
	delivery sync.Mutex
}

// New - builds empty registry.
func New() *Registry {
	return &Registry{
		list: make(map[int]*client),
	}
}

// Add - registers transport as connected client with default name and returns new client id.
func (r *Registry) Add(t Transport) int {
	return r.add(t, true)
}

// AddPending - registers connected client which does not receive messages until Admit.
func (r *Registry) AddPending(t Transport) int {
	return r.add(t, false)
}

func (r *Registry) add(t Transport, admitted bool) int {
	remote := ""
	if t != nil && t.RemoteAddr() != nil {
		remote = t.RemoteAddr().String()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	id := r.lastID
	r.list[id] = &client{
		Record: Record{
			ID:        id,
			Name:      DefaultName(id),
			Session:   uuid.NewString(),
			Remote:    remote,
			Connected: true,
			Since:     time.Now().UTC(),
		},
		transport: t,
		admitted:  admitted,
	}
	return id
}

// Remove - erases the client. Its id will not be allocated again.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.list, id)
}

// Disconnect - marks client as not connected, the record is still available for lookups.
func (r *Registry) Disconnect(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.list[id]; ok {
		c.Connected = false
	}
}

// Name - returns display name of the client or UnknownName.
func (r *Registry) Name(id int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.list[id]; ok {
		return c.Name
	}
	return UnknownName
}

// SetName - changes display name of existing client.
func (r *Registry) SetName(id int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.list[id]; ok {
		c.Name = name
	}
}

// Transport - returns transport of the client regardless of its connection state.
func (r *Registry) Transport(id int) (Transport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.list[id]
	if !ok {
		return nil, false
	}
	return c.transport, true
}

// IsConnected - false for absent clients.
func (r *Registry) IsConnected(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.list[id]
	return ok && c.Connected
}

// Lookup - returns copy of client state.
func (r *Registry) Lookup(id int) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.list[id]
	if !ok {
		return Record{}, false
	}
	return c.Record, true
}

// Connected - returns ids of connected clients in ascending order.
func (r *Registry) Connected() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.list))
	for id, c := range r.list {
		if c.Connected {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Snapshot - returns copies of all records ordered by id.
func (r *Registry) Snapshot() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := make([]Record, 0, len(r.list))
	for _, c := range r.list {
		records = append(records, c.Record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// Count - returns number of records, disconnected but not removed clients are counted too.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// reachable - makes snapshot of connected peers ordered by id.
func (r *Registry) reachable(exclude int) []peer {
	r.mu.Lock()
	defer r.mu.Unlock()
	peers := make([]peer, 0, len(r.list))
	for id, c := range r.list {
		if id == exclude || !c.Connected || !c.admitted || c.transport == nil {
			continue
		}
		peers = append(peers, peer{id, c.transport})
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].id < peers[j].id })
	return peers
}

// deliver - sends payload to the peer. Failed peer is treated as dead:
// it is marked disconnected and its transport is closed to release the owner's reader.
func (r *Registry) deliver(p peer, payload []byte) bool {
	if err := p.transport.WriteFrame(payload); err != nil {
		r.Disconnect(p.id)
		p.transport.Close()
		return false
	}
	return true
}

// Broadcast - sends message to every connected client except the excluded one
// and returns the number of successful deliveries.
// One failed client never interrupts delivery to the others.
// The registry lock is not held during sending, only the delivery order lock is.
func (r *Registry) Broadcast(message string, exclude int) int {
	return r.Publish(message, exclude, nil)
}

// Publish - same as Broadcast, but passes the message to record (if not nil) in the delivery order.
// record must not call Registry methods which send.
func (r *Registry) Publish(message string, exclude int, record func(message string)) int {
	payload := []byte(message)
	r.delivery.Lock()
	defer r.delivery.Unlock()
	if record != nil {
		record(message)
	}
	delivered := 0
	for _, p := range r.reachable(exclude) {
		if r.deliver(p, payload) {
			delivered++
		}
	}
	return delivered
}

// SendTo - sends message to single connected client.
// Returns false if the client is absent, disconnected, not admitted yet or the send has failed.
func (r *Registry) SendTo(id int, message string) bool {
	r.delivery.Lock()
	defer r.delivery.Unlock()
	p, ok := r.target(id, false)
	if !ok {
		return false
	}
	return r.deliver(p, []byte(message))
}

// Admit - sends greeting lines to pending client and makes it reachable.
// No other message is delivered in between, so nothing published before Admit
// is received by the client except through greeting. greeting must not call Registry methods which send.
func (r *Registry) Admit(id int, greeting func() []string) bool {
	r.delivery.Lock()
	defer r.delivery.Unlock()
	p, ok := r.target(id, true)
	if !ok {
		return false
	}
	if greeting != nil {
		for _, line := range greeting() {
			if !r.deliver(p, []byte(line)) {
				return false
			}
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.list[id]
	if !ok || !c.Connected {
		return false
	}
	c.admitted = true
	return true
}

// target - returns reachable transport of connected client, pending clients are included on demand.
func (r *Registry) target(id int, pending bool) (peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.list[id]
	if !ok || !c.Connected || c.transport == nil || (!c.admitted && !pending) {
		return peer{}, false
	}
	return peer{id, c.transport}, true
}

// CloseAll - marks every client disconnected and closes all transports.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	transports := make([]Transport, 0, len(r.list))
	for _, c := range r.list {
		c.Connected = false
		if c.transport != nil {
			transports = append(transports, c.transport)
		}
	}
	r.mu.Unlock()
	for _, t := range transports {
		t.Close()
	}
}

// DefaultName - display name of the client until it is renamed.
func DefaultName(id int) string {
	return "User" + strconv.Itoa(id)
}
