package network

import (
	"fmt"
	"sync"

	"github.com/coinbeam/masternode/pkg/masternode"
)

// LocalNetwork is an in-process stand-in for Network, for use in tests that
// need several masternode cores gossiping without opening real sockets.
type LocalNetwork struct {
	mu    sync.Mutex
	nodes map[string]Handler
}

// Start registers handler under addr.
func (n *LocalNetwork) Start(addr string, handler Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.nodes == nil {
		n.nodes = make(map[string]Handler)
	}
	n.nodes[addr] = handler
}

// Connect returns a LocalPeer that delivers directly, in-process, to the
// handler registered at addr.
func (n *LocalNetwork) Connect(from, addr string) (*LocalPeer, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	handler, ok := n.nodes[addr]
	if !ok {
		return nil, fmt.Errorf("masternode: no local peer registered at %s", addr)
	}
	return &LocalPeer{id: from, handler: handler}, nil
}

// LocalPeer implements masternode.Peer by calling straight into a
// registered Handler, skipping serialisation entirely.
type LocalPeer struct {
	id      string
	handler Handler

	mu    sync.Mutex
	score int
}

// ID returns the address this peer connected from.
func (p *LocalPeer) ID() string { return p.id }

// SendExistence delivers msg to the handler synchronously.
func (p *LocalPeer) SendExistence(msg *masternode.ExistenceMsg) error {
	return p.handler.OnGossipExistence(p, *msg)
}

// Misbehaving accumulates a misbehaviour score, mirroring Peer's banning
// rule without tearing down any connection.
func (p *LocalPeer) Misbehaving(score int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score += score
}

// Score returns the accumulated misbehaviour score, for test assertions.
func (p *LocalPeer) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}
