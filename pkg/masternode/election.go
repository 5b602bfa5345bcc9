package masternode

import "sort"

// ElectedSet is the elected subset of candidates, kept in lexicographic
// order for deterministic payee rotation. It is a sorted slice with log-N
// insertion/lookup rather than an insertion-ordered map.
type ElectedSet struct {
	sorted []Outpoint
}

// NewElectedSet creates an empty elected set.
func NewElectedSet() *ElectedSet {
	return &ElectedSet{}
}

func (e *ElectedSet) search(o Outpoint) int {
	return sort.Search(len(e.sorted), func(i int) bool {
		return !e.sorted[i].Less(o)
	})
}

// Contains reports whether o is currently elected.
func (e *ElectedSet) Contains(o Outpoint) bool {
	i := e.search(o)
	return i < len(e.sorted) && e.sorted[i].Equal(o)
}

// Insert adds o to the elected set, reporting whether it changed the set
// (false if o was already elected).
func (e *ElectedSet) Insert(o Outpoint) bool {
	i := e.search(o)
	if i < len(e.sorted) && e.sorted[i].Equal(o) {
		return false
	}
	e.sorted = append(e.sorted, Outpoint{})
	copy(e.sorted[i+1:], e.sorted[i:])
	e.sorted[i] = o
	return true
}

// Erase removes o from the elected set, reporting whether it was present.
func (e *ElectedSet) Erase(o Outpoint) bool {
	i := e.search(o)
	if i >= len(e.sorted) || !e.sorted[i].Equal(o) {
		return false
	}
	e.sorted = append(e.sorted[:i], e.sorted[i+1:]...)
	return true
}

// Len returns the number of elected outpoints.
func (e *ElectedSet) Len() int { return len(e.sorted) }

// Slice returns a copy of the elected outpoints in ascending order.
func (e *ElectedSet) Slice() []Outpoint {
	out := make([]Outpoint, len(e.sorted))
	copy(out, e.sorted)
	return out
}

// tallyVotes counts occurrences of each outpoint across AddVotes and
// RemoveVotes of the ElectionPeriod blocks ending at (and including) from,
// walking backward via ParentHash. It mirrors MN_GetVotes in
// masternodes.cpp.
func (c *Core) tallyVotes(from Block) (add, remove map[Outpoint]int) {
	add = make(map[Outpoint]int)
	remove = make(map[Outpoint]int)

	cur := from
	for i := 0; i < c.cfg.ElectionPeriod && cur != nil; i++ {
		for _, o := range cur.AddVotes() {
			add[o]++
		}
		for _, o := range cur.RemoveVotes() {
			remove[o]++
		}

		parent, ok := c.index.BlockAtHeight(cur.Height() - 1)
		if !ok || parent.Hash() != cur.ParentHash() {
			break
		}
		cur = parent
	}
	return add, remove
}

// OnBlockConnect applies the elections carried by the ElectionPeriod blocks
// ending at block's parent, mutating the elected set, and returns the payee
// key id to credit in block's coinbase, if any. Blocks at or below
// cfg.HardForkHeight never produce a payee or apply votes.
func (c *Core) OnBlockConnect(block Block) (KeyID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if block.Height() <= c.cfg.HardForkHeight {
		return KeyID{}, false, nil
	}

	parent, ok := c.index.BlockAtHeight(block.Height() - 1)
	if !ok {
		return KeyID{}, false, ErrBlockNotFound
	}

	addTally, removeTally := c.tallyVotes(parent)

	majority := c.cfg.ElectionPeriod / 2

	var appliedAdd, appliedRemove []Outpoint
	for o, n := range addTally {
		if n <= majority {
			continue
		}
		if _, err := c.registry.Get(o); err != nil {
			continue
		}
		if c.elected.Insert(o) {
			appliedAdd = append(appliedAdd, o)
		}
	}
	for o, n := range removeTally {
		if n <= majority {
			continue
		}
		if c.elected.Erase(o) {
			appliedRemove = append(appliedRemove, o)
		}
	}

	c.annex.SetAppliedElections(block.Hash(), appliedAdd, appliedRemove)

	payee, hasPayee := c.selectPayee(parent)
	if hasPayee {
		c.annex.SetSelectedPayee(block.Hash(), payee)
		cand, err := c.registry.Get(payee)
		if err == nil {
			return cand.KeyID, true, nil
		}
	}
	return KeyID{}, false, nil
}

// OnBlockDisconnect undoes the elections applied when block was connected.
// It asserts that the inverse operation's effect is actually observed: a
// mismatch here indicates chain-index corruption or a bug, and the node
// must halt.
func (c *Core) OnBlockDisconnect(block Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	add, remove := c.annex.AppliedElections(block.Hash())

	for _, o := range add {
		if !c.elected.Erase(o) {
			panic("masternode: disconnect could not undo an applied add-election; chain index is corrupt")
		}
	}
	for _, o := range remove {
		if !c.elected.Insert(o) {
			panic("masternode: disconnect could not undo an applied remove-election; chain index is corrupt")
		}
	}

	c.annex.Forget(block.Hash())
}

// LoadElections rebuilds the elected set from chain data alone by replaying
// every block from one past cfg.HardForkHeight to the tip, giving the same
// result a from-genesis replay would.
func (c *Core) LoadElections() error {
	c.mu.Lock()
	c.elected = NewElectedSet()
	c.mu.Unlock()

	tip := c.index.TipHeight()
	for h := c.cfg.HardForkHeight + 1; h <= tip; h++ {
		blk, ok := c.index.BlockAtHeight(h)
		if !ok {
			return ErrBlockNotFound
		}
		if _, _, err := c.OnBlockConnect(blk); err != nil {
			return err
		}
	}
	return nil
}
