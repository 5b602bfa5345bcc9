package masternode

import "sync"

// scoreMu guards the score cache fields of every Candidate, mirroring
// livenessMu's rationale in liveness.go.
var scoreMu sync.Mutex

// BlockTimes resolves the first-seen receive time the core stamped on a
// block, keyed by block hash. Zero, false means the block was never
// stamped.
type BlockTimes interface {
	RecvTimeMs(h Hash) (int64, bool)
}

// Score returns the candidate's current penalty score, refreshing the cache
// if the tip has advanced more than scoreCacheHorizon blocks since the last
// computation. Lower is better; a misbehaving candidate always scores at
// the sentinel ceiling.
func (c *Candidate) Score(tipHeight, initialHeight int64, index BlockIndex, times BlockTimes) (float64, error) {
	scoreMu.Lock()
	stale := !c.scoreEverComputed || c.misbehaving || tipHeight-c.scoreValidThroughBlock > scoreCacheHorizon
	if !stale {
		s := c.cachedScore
		scoreMu.Unlock()
		return s, nil
	}
	scoreMu.Unlock()

	s, err := c.updateScore(tipHeight, initialHeight, index, times)
	if err != nil {
		return 0, err
	}

	scoreMu.Lock()
	c.cachedScore = s
	c.scoreValidThroughBlock = tipHeight
	c.scoreEverComputed = true
	scoreMu.Unlock()
	return s, nil
}

func (c *Candidate) updateScore(tipHeight, initialHeight int64, index BlockIndex, times BlockTimes) (float64, error) {
	if c.misbehaving {
		return misbehavingScoreMultiple * MaxScore, nil
	}

	blocks, err := Schedule(c.Outpoint, tipHeight, index)
	if err != nil {
		return 0, err
	}

	msgs := c.existenceMsgsSnapshot()

	var total float64
	var counted int
	for _, height := range blocks {
		if height <= initialHeight {
			continue
		}
		counted++

		blk, ok := index.BlockAtHeight(height)
		if !ok {
			return 0, ErrBlockNotFound
		}

		delta := PenaltyTime
		for _, m := range msgs {
			if m.Msg.BlockHeight == blk.Height() && m.Msg.BlockHash == blk.Hash() {
				recvTime, stamped := times.RecvTimeMs(blk.Hash())
				if !stamped || m.RecvTime < recvTime {
					delta = 0
				} else {
					delta = float64(m.RecvTime-recvTime) / 1000.0
				}
				break
			}
		}
		total += delta
	}

	if counted == 0 {
		return 0, nil
	}
	return total / float64(counted), nil
}

// StakeAdjustedScore is the ordering key used for voting: score, tie-broken
// in favour of larger stake.
func StakeAdjustedScore(score float64, amount uint64) float64 {
	return score - 0.001*float64(amount)/COIN
}
