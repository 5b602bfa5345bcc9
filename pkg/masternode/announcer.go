package masternode

// announceLocal is the Local Announcer: for every locally operated
// candidate whose challenge schedule (computed as of the current tip) names
// the newly stamped height, it builds, signs and injects a fresh existence
// message through the same gossip entry point a peer's message would take,
// with a nil sender so the relay step broadcasts to every connected peer
// without excluding one. Called once per height stamped by the backward
// walk in TickOnBestChanged, so a candidate schedule entry that falls on an
// intermediate block settled between ticks is still announced for, not just
// one that happens to land on the tip itself.
func (c *Core) announceLocal(tip, height int64) {
	blk, ok := c.index.BlockAtHeight(height)
	if !ok {
		return
	}

	for _, cand := range c.registry.LocalCandidates() {
		blocks, err := Schedule(cand.Outpoint, tip, c.index)
		if err != nil {
			logger.Warn("local announce schedule lookup failed", "outpoint", cand.Outpoint, "err", err)
			continue
		}

		due := false
		for _, h := range blocks {
			if h == height {
				due = true
				break
			}
		}
		if !due {
			continue
		}

		msg := ExistenceMsg{
			Outpoint:    cand.Outpoint,
			BlockHeight: height,
			BlockHash:   blk.Hash(),
		}
		if err := msg.Sign(cand.privateKey); err != nil {
			logger.Error("failed to sign local existence message", "outpoint", cand.Outpoint, "err", err)
			continue
		}

		if err := c.OnGossipExistence(nil, msg); err != nil {
			logger.Error("local existence message rejected", "outpoint", cand.Outpoint, "err", err)
		}
	}
}
