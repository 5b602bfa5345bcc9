package masternode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAnnounceLocalCoversIntermediateStampedHeights exercises the catch-up
// case the backward walk in TickOnBestChanged exists for: several blocks
// settle before the hook fires, so more than one height is stamped in a
// single tick. A locally operated candidate whose schedule names one of
// those intermediate heights, not just the new tip, must still announce
// for it.
func TestAnnounceLocalCoversIntermediateStampedHeights(t *testing.T) {
	cfg := DefaultConfig()
	coins := newFakeCoinView()
	idx := newFakeIndex(4 * ScheduleRestart)
	core := NewCore(cfg, coins, idx, NewPeerSet(), func() bool { return false })

	o := testOutpoint(1)
	pk, sk, err := RandKeyPair()
	assert.NoError(t, err)
	coins.put(o, acceptableOutput(cfg, pk.KeyID()))
	assert.NoError(t, core.StartLocal(o, sk))

	// Establishes initialHeight at the current tip; nothing stamps yet
	// since the walk requires height > initialHeight.
	core.TickOnBestChanged()

	// Several blocks settle without an intervening tick, standing in for
	// an initial catch-up or a burst of blocks arriving between ticks.
	for i := 0; i < ScheduleRestart; i++ {
		idx.extend(nil, nil)
	}
	tip := idx.TipHeight()

	blocks, err := Schedule(o, tip, idx)
	assert.NoError(t, err)
	assert.NotEmpty(t, blocks)

	var intermediate int64 = -1
	for _, h := range blocks {
		if h < tip {
			intermediate = h
			break
		}
	}
	assert.NotEqual(t, int64(-1), intermediate, "schedule should include a height below the new tip")

	core.TickOnBestChanged()

	cand, err := core.Registry().Get(o)
	assert.NoError(t, err)

	found := false
	for _, m := range cand.existenceMsgs {
		if m.Msg.BlockHeight == intermediate {
			found = true
			break
		}
	}
	assert.True(t, found, "expected a self-announced existence message for intermediate height %d", intermediate)
}
