package masternode

import (
	"sync"

	log "github.com/helinwang/log15"
)

var logger = log.New("pkg", "masternode")

// IsSyncing reports whether the host node is still in initial block
// download.
type IsSyncing func() bool

// Core is the masternode coordination core: a single owned context struct
// threaded through the host's chain manager, replacing the source's
// file-scope globals. One Core is constructed at host startup and
// destroyed at shutdown; it holds no hidden reinitialisation path.
type Core struct {
	cfg   Config
	coins CoinView
	index BlockIndex
	peers *PeerSet

	registry *Registry
	annex    *AnnexStore
	syncing  IsSyncing

	mu               sync.Mutex
	elected          *ElectedSet
	initialHeight    int64
	initialHeightSet bool
}

// NewCore constructs a Core. coins and index are the host's coin view and
// block index; syncing reports initial-block-download status; peers is the
// peer set the gossip relay step broadcasts through.
func NewCore(cfg Config, coins CoinView, index BlockIndex, peers *PeerSet, syncing IsSyncing) *Core {
	return &Core{
		cfg:      cfg,
		coins:    coins,
		index:    index,
		peers:    peers,
		registry: NewRegistry(coins, cfg),
		annex:    NewAnnexStore(),
		syncing:  syncing,
		elected:  NewElectedSet(),
	}
}

// Registry exposes the candidate registry, e.g. for RPC introspection.
func (c *Core) Registry() *Registry { return c.registry }

// Elected returns a snapshot of the currently elected outpoints in
// ascending lexicographic order.
func (c *Core) Elected() []Outpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elected.Slice()
}

// StartLocal marks outpoint as a locally operated candidate signed with
// key.
func (c *Core) StartLocal(o Outpoint, key SK) error {
	return c.registry.SetLocal(o, key)
}

// StopLocal stops signing for outpoint.
func (c *Core) StopLocal(o Outpoint) {
	c.registry.ClearLocal(o)
}
