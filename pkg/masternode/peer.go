package masternode

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// knownHashesCap bounds each peer's per-pair relay-memory set. Without a
// cap a long-lived connection's known_hashes would grow without bound; an
// LRU of this size comfortably covers MonitoringPeriod's worth of gossip
// from every candidate in a MaxMasternodes-sized network.
const knownHashesCap = 32768

// Peer is a connected network peer, the host's peer-to-peer socket layer
// referenced only by interface so this package stays transport-agnostic.
type Peer interface {
	// ID uniquely identifies the peer for the lifetime of the
	// connection.
	ID() string

	// SendExistence pushes an mnexists message to the peer.
	SendExistence(msg *ExistenceMsg) error

	// Misbehaving reports a positive misbehaviour score against the peer.
	Misbehaving(score int)
}

// PeerSet is the core's view of connected peers, guarded by a single mutex
// (cs_vNodes in the source-world). It is the only lock this package shares
// across the gossip relay step.
type PeerSet struct {
	mu    sync.Mutex
	peers map[string]Peer
	known map[string]*lru.Cache
}

// NewPeerSet creates an empty peer set.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		peers: make(map[string]Peer),
		known: make(map[string]*lru.Cache),
	}
}

// Add registers a connected peer.
func (ps *PeerSet) Add(p Peer) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	c, _ := lru.New(knownHashesCap)
	ps.peers[p.ID()] = p
	ps.known[p.ID()] = c
}

// Remove forgets a disconnected peer and its relay memory.
func (ps *PeerSet) Remove(id string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	delete(ps.peers, id)
	delete(ps.known, id)
}

// markKnown records identity in id's known-hash set, reporting whether it
// was not already present (i.e. whether the peer needs the message pushed
// to it). Must be called with ps.mu held.
func (ps *PeerSet) markKnown(id string, identity Hash) bool {
	c, ok := ps.known[id]
	if !ok {
		return false
	}
	if c.Contains(identity) {
		return false
	}
	c.Add(identity, struct{}{})
	return true
}

// Relay implements the gossip relay step: the identity hash is
// inserted into the sender's known-set (if any) and into every other
// peer's known-set; each peer where insertion actually changed the set
// (i.e. was not already known) receives the message. The peer-list mutex
// is held for the whole broadcast loop, matching the source's cs_vNodes
// locking around the BOOST_FOREACH relay loop.
func (ps *PeerSet) Relay(sender Peer, msg *ExistenceMsg) {
	identity := msg.IdentityHash()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if sender != nil {
		ps.markKnown(sender.ID(), identity)
	}

	for id, p := range ps.peers {
		if sender != nil && id == sender.ID() {
			continue
		}
		if ps.markKnown(id, identity) {
			p.SendExistence(msg) //nolint:errcheck // relay is best-effort; a failed peer will be pruned by its own connection handling.
		}
	}
}
