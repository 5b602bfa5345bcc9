package network

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net"
	"sync"

	log "github.com/helinwang/log15"

	"github.com/coinbeam/masternode/pkg/masternode"
)

type packetType int

const (
	existenceArg packetType = iota
	pingArg
	pingRet
)

type packet struct {
	T    packetType
	Data []byte
}

// banScore is the accumulated misbehaviour score at which a connection is
// closed rather than merely noted. A single forgery report (PeerScoreForgery)
// reaches it immediately, while smaller reports (ancient message, unknown
// candidate, spam) accumulate over repeated offences.
const banScore = 100

// Handler receives gossip delivered by a connected Peer. *masternode.Core
// satisfies this directly.
type Handler interface {
	OnGossipExistence(peer masternode.Peer, msg masternode.ExistenceMsg) error
}

// Peer is a gob-over-TCP connection to another node, implementing
// masternode.Peer: a thin RPC-style dispatcher keyed by a packet type enum,
// trimmed here to the one wire message the masternode core exchanges
// ("mnexists") plus a keepalive ping.
type Peer struct {
	id      string
	handler Handler
	conn    net.Conn
	enc     *gob.Encoder

	pingRetCh chan struct{}

	mu    sync.Mutex
	err   error
	score int
}

// NewPeer wraps conn as a masternode.Peer, dispatching incoming existence
// messages to handler.
func NewPeer(conn net.Conn, handler Handler) *Peer {
	p := &Peer{
		id:        conn.RemoteAddr().String(),
		enc:       gob.NewEncoder(conn),
		conn:      conn,
		handler:   handler,
		pingRetCh: make(chan struct{}, 10),
	}

	go p.read()
	return p
}

// ID returns the peer's remote address, unique for the life of the
// connection.
func (p *Peer) ID() string { return p.id }

func (p *Peer) onErr(err error) {
	log.Info("masternode peer error, closing connection", "id", p.id, "err", err)
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()

	if err := p.conn.Close(); err != nil {
		log.Error("close TCP conn error", "err", err)
	}
}

// nolint: gocyclo
func (p *Peer) read() {
	dec := gob.NewDecoder(p.conn)
	for {
		var pac packet
		if err := dec.Decode(&pac); err != nil {
			p.onErr(err)
			return
		}

		dataDec := gob.NewDecoder(bytes.NewReader(pac.Data))
		switch pac.T {
		case existenceArg:
			var msg masternode.ExistenceMsg
			if err := dataDec.Decode(&msg); err != nil {
				p.onErr(err)
				return
			}

			if err := p.handler.OnGossipExistence(p, msg); err != nil {
				log.Debug("existence message not applied", "id", p.id, "err", err)
			}
		case pingArg:
			if err := p.write(packet{T: pingRet}); err != nil {
				p.onErr(err)
				return
			}
		case pingRet:
			select {
			case p.pingRetCh <- struct{}{}:
			default:
			}
		default:
			p.onErr(fmt.Errorf("unrecognized packet type: %d", pac.T))
			return
		}
	}
}

func (p *Peer) write(v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Must reuse the same encoder instance across writes; a fresh
	// encoder per call corrupts the gob stream framing on the reader
	// side ("extra data in buffer").
	return p.enc.Encode(v)
}

func gobEncode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendExistence pushes an existence message to the peer.
func (p *Peer) SendExistence(msg *masternode.ExistenceMsg) error {
	p.mu.Lock()
	if err := p.err; err != nil {
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	d, err := gobEncode(msg)
	if err != nil {
		return err
	}

	if err := p.write(packet{T: existenceArg, Data: d}); err != nil {
		p.onErr(err)
		return err
	}
	return nil
}

// Misbehaving accumulates a peer misbehaviour report and disconnects the
// peer once the accumulated score reaches banScore.
func (p *Peer) Misbehaving(score int) {
	p.mu.Lock()
	p.score += score
	ban := p.score >= banScore
	p.mu.Unlock()

	log.Debug("peer misbehaviour reported", "id", p.id, "score", score)

	if ban {
		log.Info("banning misbehaving peer", "id", p.id, "score", p.score)
		if err := p.conn.Close(); err != nil {
			log.Error("close TCP conn error", "err", err)
		}
	}
}
