package masternode

// selectPayee rotates the coinbase payee forward through the elected set.
// parent is the block whose SelectedPayee (if any) determines the
// rotation's starting point for the block being connected. Callers must
// hold c.mu.
func (c *Core) selectPayee(parent Block) (Outpoint, bool) {
	prevPayee, hadPrev := c.annex.SelectedPayee(parent.Hash())

	if !hadPrev {
		if c.elected.Len() < StartPayments {
			return Outpoint{}, false
		}
		return c.elected.sorted[0], true
	}

	if c.elected.Len() < StopPayments {
		return Outpoint{}, false
	}

	for _, o := range c.elected.sorted {
		if prevPayee.Less(o) {
			return o, true
		}
	}
	// No elected outpoint sorts after the previous payee: wrap.
	return c.elected.sorted[0], true
}
