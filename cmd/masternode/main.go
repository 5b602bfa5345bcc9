// Command masternode runs a standalone masternode coordination core,
// gossiping existence messages with peers over TCP and driving a small
// in-process development chain so the core can be exercised without a full
// node attached. A production deployment embeds pkg/masternode directly and
// supplies its own CoinView/BlockIndex backed by the real chain; this
// binary exists for local development and manual testing.
package main

import (
	"bytes"
	"encoding/gob"
	"encoding/hex"
	"flag"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/helinwang/log15"

	"github.com/coinbeam/masternode/pkg/masternode"
	"github.com/coinbeam/masternode/pkg/network"
)

// coinEntry is the gob-serialised form of one devCoinView row, loaded from
// the file named by -coinview.
type coinEntry struct {
	Outpoint masternode.Outpoint
	Output   masternode.Output
}

// devCoinView is a static, file-loaded stand-in for the host's real UTXO
// index, sufficient to drive the core's admission predicate in a local
// development network.
type devCoinView struct {
	mu   sync.Mutex
	rows map[masternode.Outpoint]masternode.Output
}

func newDevCoinView(entries []coinEntry) *devCoinView {
	rows := make(map[masternode.Outpoint]masternode.Output, len(entries))
	for _, e := range entries {
		rows[e.Outpoint] = e.Output
	}
	return &devCoinView{rows: rows}
}

func (v *devCoinView) GetOutput(o masternode.Outpoint) (masternode.Output, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out, ok := v.rows[o]
	return out, ok
}

// bump advances every row's confirmation count by one, standing in for the
// real chain's tip advancing.
func (v *devCoinView) bump() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for o, out := range v.rows {
		out.Confirmations++
		v.rows[o] = out
	}
}

// devBlock is the in-process development chain's block type, carrying only
// what masternode.Block requires.
type devBlock struct {
	height      int64
	hash        masternode.Hash
	parentHash  masternode.Hash
	addVotes    []masternode.Outpoint
	removeVotes []masternode.Outpoint
}

func (b *devBlock) Height() int64                      { return b.height }
func (b *devBlock) Hash() masternode.Hash              { return b.hash }
func (b *devBlock) ParentHash() masternode.Hash        { return b.parentHash }
func (b *devBlock) AddVotes() []masternode.Outpoint    { return b.addVotes }
func (b *devBlock) RemoveVotes() []masternode.Outpoint { return b.removeVotes }

// devIndex is an in-memory, append-only chain used to drive the core in the
// absence of a real one. Blocks are minted on a fixed interval and carry
// whatever votes CastVotes proposes at mint time.
type devIndex struct {
	mu     sync.Mutex
	blocks []*devBlock
}

func newDevIndex() *devIndex {
	genesis := &devBlock{height: 0, hash: masternode.SHA3([]byte("masternode-devchain-genesis"))}
	return &devIndex{blocks: []*devBlock{genesis}}
}

func (idx *devIndex) TipHeight() int64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.blocks[len(idx.blocks)-1].height
}

func (idx *devIndex) BlockAtHeight(height int64) (masternode.Block, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if height < 0 || height >= int64(len(idx.blocks)) {
		return nil, false
	}
	return idx.blocks[height], true
}

func (idx *devIndex) mint(add, remove []masternode.Outpoint) masternode.Block {
	idx.mu.Lock()
	parent := idx.blocks[len(idx.blocks)-1]
	blk := &devBlock{
		height:      parent.height + 1,
		parentHash:  parent.hash,
		addVotes:    add,
		removeVotes: remove,
	}
	blk.hash = masternode.SHA3(parent.hash[:], []byte(strconv.FormatInt(blk.height, 10)))
	idx.blocks = append(idx.blocks, blk)
	idx.mu.Unlock()
	return blk
}

func decodeGob(path string, v interface{}) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(v); err != nil {
		panic(err)
	}
}

// parseOutpoint parses "hexhash:index".
func parseOutpoint(s string) (masternode.Outpoint, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return masternode.Outpoint{}, fmt.Errorf("outpoint must be hexhash:index, got %q", s)
	}
	raw, err := hex.DecodeString(parts[0])
	if err != nil {
		return masternode.Outpoint{}, err
	}
	if len(raw) != masternode.TxHashBytes {
		return masternode.Outpoint{}, fmt.Errorf("outpoint hash must be %d bytes, got %d", masternode.TxHashBytes, len(raw))
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return masternode.Outpoint{}, err
	}

	var o masternode.Outpoint
	copy(o.Hash[:], raw)
	o.Index = uint32(index)
	return o, nil
}

func main() {
	addr := flag.String("addr", ":8108", "address to listen for peer connections on")
	seed := flag.String("seed", "", "seed peer address to dial on startup")
	coinviewPath := flag.String("coinview", "", "path to a gob-encoded []coinEntry file describing the development chain's staking outputs")
	localKeyPath := flag.String("localkey", "", "path to a gob-encoded masternode.SK for a locally operated candidate")
	localOutpointStr := flag.String("localoutpoint", "", "hexhash:index of the locally operated candidate's staking outpoint")
	blockTime := flag.Duration("blocktime", 2*time.Second, "development chain block interval")
	flag.Parse()

	var entries []coinEntry
	if *coinviewPath != "" {
		decodeGob(*coinviewPath, &entries)
	}
	coins := newDevCoinView(entries)
	index := newDevIndex()
	peers := masternode.NewPeerSet()

	syncing := func() bool { return false }
	core := masternode.NewCore(masternode.DefaultConfig(), coins, index, peers, syncing)

	if *localKeyPath != "" {
		var sk masternode.SK
		decodeGob(*localKeyPath, &sk)

		o, err := parseOutpoint(*localOutpointStr)
		if err != nil {
			panic(err)
		}
		if err := core.StartLocal(o, sk); err != nil {
			log.Error("failed to register local candidate", "err", err)
		}
	}

	var net network.Network
	err := net.Start(*addr, func(p *network.Peer) {
		peers.Add(p)
		log.Info("peer connected", "id", p.ID())
	}, core)
	if err != nil {
		panic(err)
	}

	if *seed != "" {
		p, err := net.Connect(*seed, core)
		if err != nil {
			log.Error("failed to connect to seed peer", "addr", *seed, "err", err)
		} else {
			peers.Add(p)
		}
	}

	log.Info("masternode core started", "addr", *addr)

	for range time.Tick(*blockTime) {
		coins.bump()

		add, remove := core.CastVotes()
		blk := index.mint(add, remove)

		if _, _, err := core.OnBlockConnect(blk); err != nil {
			log.Error("failed to connect development block", "err", err)
			continue
		}
		core.TickOnBestChanged()

		log.Info("development block minted", "height", blk.Height(), "add_votes", len(add), "remove_votes", len(remove), "elected", len(core.Elected()))
	}
}
