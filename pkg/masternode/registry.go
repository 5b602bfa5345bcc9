package masternode

import (
	"errors"
	"sync"
)

// ErrUnknownCandidate is returned when an outpoint cannot be admitted to the
// registry: it is spent, too young, under-valued, or its key id cannot be
// extracted.
var ErrUnknownCandidate = errors.New("masternode: unknown or unacceptable candidate")

// Candidate is a registry entry, owned by the Registry.
type Candidate struct {
	Outpoint Outpoint
	KeyID    KeyID
	Amount   uint64

	IsLocal    bool
	privateKey SK

	existenceMsgs []ReceivedExistenceMsg
	misbehaving   bool

	cachedScore            float64
	scoreValidThroughBlock int64
	scoreEverComputed      bool
}

// Misbehaving reports the candidate's sticky misbehaviour flag.
func (c *Candidate) Misbehaving() bool {
	return c.misbehaving
}

// Registry is the map of known candidates keyed by staking outpoint,
// admitted lazily by reading through the coin view. It corresponds to
// g_MasterNodes / CMasterNode in masternodes.cpp, restructured as an owned
// struct rather than a file-scope global.
type Registry struct {
	coins CoinView
	cfg   Config

	mu         sync.Mutex
	candidates map[Outpoint]*Candidate
	local      map[Outpoint]struct{}
}

// NewRegistry creates an empty registry backed by the given coin view.
func NewRegistry(coins CoinView, cfg Config) *Registry {
	return &Registry{
		coins:      coins,
		cfg:        cfg,
		candidates: make(map[Outpoint]*Candidate),
		local:      make(map[Outpoint]struct{}),
	}
}

// Get returns the candidate for o, admitting it from the coin view on first
// use. It returns ErrUnknownCandidate if the outpoint is not currently
// acceptable.
func (r *Registry) Get(o Outpoint) (*Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(o)
}

func (r *Registry) get(o Outpoint) (*Candidate, error) {
	if c, ok := r.candidates[o]; ok {
		return c, nil
	}

	keyID, amount, ok := isAcceptable(o, r.coins, r.cfg)
	if !ok {
		return nil, ErrUnknownCandidate
	}

	c := &Candidate{Outpoint: o, KeyID: keyID, Amount: amount}
	r.candidates[o] = c
	if _, local := r.local[o]; local {
		c.IsLocal = true
	}
	return c, nil
}

// Prune re-filters every registry entry through the acceptability predicate
// and drops the ones that no longer pass. It rebuilds the map from scratch
// rather than deleting in place, following the source's MN_Cleanup.
func (r *Registry) Prune() {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make(map[Outpoint]*Candidate, len(r.candidates))
	for o, c := range r.candidates {
		if _, _, ok := isAcceptable(o, r.coins, r.cfg); ok {
			kept[o] = c
		}
	}
	r.candidates = kept
}

// SetLocal marks o as locally operated and attaches the private key used to
// sign its existence messages. It fails if o cannot be admitted.
func (r *Registry) SetLocal(o Outpoint, key SK) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.get(o)
	if err != nil {
		return err
	}

	c.IsLocal = true
	c.privateKey = key
	r.local[o] = struct{}{}
	return nil
}

// ClearLocal removes o from the local set and forgets its private key.
func (r *Registry) ClearLocal(o Outpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.local, o)
	if c, ok := r.candidates[o]; ok {
		c.IsLocal = false
		c.privateKey = nil
	}
}

// LocalCandidates returns every candidate this node currently signs for.
func (r *Registry) LocalCandidates() []*Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Candidate, 0, len(r.local))
	for o := range r.local {
		if c, ok := r.candidates[o]; ok {
			out = append(out, c)
		}
	}
	return out
}

// All returns every currently registered candidate. Callers must not
// mutate the returned candidates outside of the Registry/LivenessLog/Scorer
// APIs.
func (r *Registry) All() []*Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, c)
	}
	return out
}
