package masternode

// Schedule computes the challenge blocks a candidate is expected to attest
// to, as of the chain tip at height h. It returns an empty, non-nil slice
// if the chain is not yet long enough to have a schedule.
//
// This mirrors CMasterNode::GetExistenceBlocks in masternodes.cpp: two
// overlapping RESTART-sized windows are considered, each with its own
// PERIOD-derived shift, and only heights inside (h-RESTART, h] survive.
func Schedule(o Outpoint, h int64, index BlockIndex) ([]int64, error) {
	if h < 4*ScheduleRestart {
		return []int64{}, nil
	}

	anchor := (h / ScheduleRestart) * ScheduleRestart

	var out []int64
	for i := 1; i >= 0; i-- {
		seedBlock := anchor - int64(i)*ScheduleRestart

		seedHeight := seedBlock - SchedulePeriod
		blk, ok := index.BlockAtHeight(seedHeight)
		if !ok {
			return nil, ErrBlockNotFound
		}

		seed := SHA3(blk.Hash().bytes(), o.encode())
		shift := int64(seed.get64() % SchedulePeriod)

		for j := seedBlock + shift; j < seedBlock+ScheduleRestart; j += SchedulePeriod {
			if j <= h && j > h-ScheduleRestart {
				out = append(out, j)
			}
		}
	}

	if out == nil {
		out = []int64{}
	}
	return out, nil
}

func (h Hash) bytes() []byte {
	b := make([]byte, hashBytes)
	copy(b, h[:])
	return b
}
