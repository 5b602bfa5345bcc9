package masternode

// OnGossipExistence is the process_existence entry point: a peer (or, for
// locally originated announcements, a nil sender) has delivered a signed
// existence message for validation, admission and relay.
func (c *Core) OnGossipExistence(peer Peer, msg ExistenceMsg) error {
	if c.syncing() {
		return ErrSyncing
	}

	tip := c.index.TipHeight()

	// Two bands, matching MN_ProcessExistenceMsg_Impl: anything older than
	// MonitoringPeriod blocks is penalised and dropped; the next
	// MonitoringPeriod/2 blocks of that are dropped silently (still
	// retranslatable-stale, but not worth penalising over). A future
	// height, and a BlockHash that doesn't match the chain (a side-chain
	// or reorg reference), are both processed normally here: they simply
	// won't match any challenge block when scoring runs.
	if msg.BlockHeight < tip-MonitoringPeriod {
		misbehave(peer, PeerScoreAncient)
		return nil
	}
	if msg.BlockHeight < tip-MonitoringPeriod/2 {
		return nil
	}

	cand, err := c.registry.Get(msg.Outpoint)
	if err != nil {
		misbehave(peer, PeerScoreUnknownCandidate)
		return nil
	}

	recovered, err := msg.RecoveredKeyID()
	if err != nil || recovered != cand.KeyID {
		misbehave(peer, PeerScoreForgery)
		return nil
	}

	verdict := cand.AddExistenceMsg(msg, tip)
	switch {
	case verdict == VerdictAdmitted:
		c.peers.Relay(peer, &msg)
	case verdict > VerdictDuplicate:
		misbehave(peer, verdict)
	}
	return nil
}

func misbehave(peer Peer, score int) {
	if peer != nil {
		peer.Misbehaving(score)
	}
}

// TickOnBestChanged is the block-receipt hook: the host calls it once after
// its tip settles on a new block, whether by connect or reorg. It stamps
// receive times for newly-connected blocks, prunes the registry every ten
// blocks, and runs the Local Announcer.
func (c *Core) TickOnBestChanged() {
	if c.syncing() {
		return
	}

	tip := c.index.TipHeight()

	c.mu.Lock()
	if !c.initialHeightSet {
		c.initialHeight = tip
		c.initialHeightSet = true
	}
	initialHeight := c.initialHeight
	c.mu.Unlock()

	if tip%10 == 0 {
		c.registry.Prune()
	}

	now := monotoneNowMs()
	for h := tip; h > initialHeight; h-- {
		blk, ok := c.index.BlockAtHeight(h)
		if !ok {
			break
		}
		if !c.annex.StampRecvTime(blk.Hash(), now) {
			// Already stamped: every ancestor was stamped when
			// this block was itself the tip.
			break
		}
		c.announceLocal(tip, h)
	}
}
