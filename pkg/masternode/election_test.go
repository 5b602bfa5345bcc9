package masternode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElectedSetInsertEraseContains(t *testing.T) {
	e := NewElectedSet()
	a, b, c := testOutpoint(3), testOutpoint(1), testOutpoint(2)

	assert.True(t, e.Insert(a))
	assert.True(t, e.Insert(b))
	assert.True(t, e.Insert(c))
	assert.False(t, e.Insert(b), "re-inserting must report no change")

	assert.Equal(t, []Outpoint{b, c, a}, e.Slice(), "must stay lexicographically sorted")
	assert.True(t, e.Contains(b))

	assert.True(t, e.Erase(b))
	assert.False(t, e.Erase(b), "erasing twice must report no change")
	assert.False(t, e.Contains(b))
	assert.Equal(t, 2, e.Len())
}

func newElectionTestCore(cfg Config) (*Core, *fakeCoinView, *fakeIndex) {
	coins := newFakeCoinView()
	idx := newFakeIndex(int64(cfg.ElectionPeriod) + 5)
	core := NewCore(cfg, coins, idx, NewPeerSet(), func() bool { return false })
	return core, coins, idx
}

func TestOnBlockConnectAppliesMajorityAddVote(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElectionPeriod = 10
	core, coins, idx := newElectionTestCore(cfg)

	o := testOutpoint(1)
	coins.put(o, acceptableOutput(cfg, KeyID{1}))

	majority := cfg.ElectionPeriod/2 + 1
	for i := 0; i < majority; i++ {
		idx.extend([]Outpoint{o}, nil)
	}
	tip := idx.extend(nil, nil) // the block being connected; votes tallied over its parent's history

	_, _, err := core.OnBlockConnect(tip)
	assert.NoError(t, err)
	assert.True(t, core.elected.Contains(o))
}

func TestOnBlockConnectIgnoresMinorityAddVote(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElectionPeriod = 10
	core, coins, idx := newElectionTestCore(cfg)

	o := testOutpoint(1)
	coins.put(o, acceptableOutput(cfg, KeyID{1}))

	minority := cfg.ElectionPeriod/2 - 1
	for i := 0; i < minority; i++ {
		idx.extend([]Outpoint{o}, nil)
	}
	tip := idx.extend(nil, nil)

	_, _, err := core.OnBlockConnect(tip)
	assert.NoError(t, err)
	assert.False(t, core.elected.Contains(o))
}

func TestOnBlockConnectDisconnectIsInverse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElectionPeriod = 10
	core, coins, idx := newElectionTestCore(cfg)

	o := testOutpoint(1)
	coins.put(o, acceptableOutput(cfg, KeyID{1}))

	majority := cfg.ElectionPeriod/2 + 1
	for i := 0; i < majority; i++ {
		idx.extend([]Outpoint{o}, nil)
	}
	tip := idx.extend(nil, nil)

	_, _, err := core.OnBlockConnect(tip)
	assert.NoError(t, err)
	assert.True(t, core.elected.Contains(o))

	core.OnBlockDisconnect(tip)
	assert.False(t, core.elected.Contains(o))
}

func TestOnBlockDisconnectPanicsOnCorruption(t *testing.T) {
	cfg := DefaultConfig()
	core, _, idx := newElectionTestCore(cfg)

	blk, ok := idx.BlockAtHeight(1)
	assert.True(t, ok)
	core.annex.SetAppliedElections(blk.Hash(), []Outpoint{testOutpoint(9)}, nil)

	assert.Panics(t, func() { core.OnBlockDisconnect(blk) })
}

func TestLoadElectionsReplaysToSameResult(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElectionPeriod = 10
	core, coins, idx := newElectionTestCore(cfg)

	o := testOutpoint(1)
	coins.put(o, acceptableOutput(cfg, KeyID{1}))

	majority := cfg.ElectionPeriod/2 + 1
	for i := 0; i < majority; i++ {
		idx.extend([]Outpoint{o}, nil)
	}
	tip := idx.extend(nil, nil)

	_, _, err := core.OnBlockConnect(tip)
	assert.NoError(t, err)
	want := core.elected.Slice()

	assert.NoError(t, core.LoadElections())
	assert.Equal(t, want, core.elected.Slice())
}
