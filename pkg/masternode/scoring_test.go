package masternode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimes struct {
	recv map[Hash]int64
}

func newFakeTimes() *fakeTimes { return &fakeTimes{recv: make(map[Hash]int64)} }

func (t *fakeTimes) RecvTimeMs(h Hash) (int64, bool) {
	v, ok := t.recv[h]
	return v, ok
}

func TestScoreMisbehavingSentinel(t *testing.T) {
	idx := newFakeIndex(10 * ScheduleRestart)
	c := &Candidate{Outpoint: testOutpoint(1), misbehaving: true}

	score, err := c.Score(idx.TipHeight(), 0, idx, newFakeTimes())
	assert.NoError(t, err)
	assert.Equal(t, misbehavingScoreMultiple*MaxScore, score)
}

func TestScoreRewardsPromptAttestation(t *testing.T) {
	idx := newFakeIndex(10 * ScheduleRestart)
	tip := idx.TipHeight()
	o := testOutpoint(1)

	blocks, err := Schedule(o, tip, idx)
	assert.NoError(t, err)
	assert.NotEmpty(t, blocks)

	c := &Candidate{Outpoint: o}
	times := newFakeTimes()
	for _, h := range blocks {
		blk, ok := idx.BlockAtHeight(h)
		assert.True(t, ok)
		times.recv[blk.Hash()] = 5000
		c.AddExistenceMsg(ExistenceMsg{Outpoint: o, BlockHeight: h, BlockHash: blk.Hash()}, tip)
	}

	score, err := c.Score(tip, 0, idx, times)
	assert.NoError(t, err)
	assert.Less(t, score, PenaltyTime)
}

func TestScoreCachesUntilHorizonExceeded(t *testing.T) {
	idx := newFakeIndex(10 * ScheduleRestart)
	tip := idx.TipHeight()
	c := &Candidate{Outpoint: testOutpoint(1)}

	first, err := c.Score(tip, 0, idx, newFakeTimes())
	assert.NoError(t, err)
	assert.True(t, c.scoreEverComputed)

	c.cachedScore = -1 // poison the cache to detect a recompute
	within, err := c.Score(tip+scoreCacheHorizon, 0, idx, newFakeTimes())
	assert.NoError(t, err)
	assert.Equal(t, float64(-1), within, "must reuse cache within horizon")

	idx2 := newFakeIndex(10*ScheduleRestart + scoreCacheHorizon + 1)
	beyond, err := c.Score(tip+scoreCacheHorizon+1, 0, idx2, newFakeTimes())
	assert.NoError(t, err)
	assert.NotEqual(t, float64(-1), beyond, "must recompute past the horizon")
	_ = first
}

func TestStakeAdjustedScorePrefersLargerStake(t *testing.T) {
	small := StakeAdjustedScore(10, 1*COIN)
	large := StakeAdjustedScore(10, 1000*COIN)
	assert.Less(t, large, small)
}
