package masternode

// Output describes the UTXO/coin-view data the registry needs to judge
// whether an outpoint may back a masternode candidate. It is deliberately
// minimal: value and the extractable key id are the only fields the
// acceptability predicate reads.
type Output struct {
	// Confirmations is the output's age in blocks, as of the tip the
	// coin view was queried at.
	Confirmations int64

	// Value is the output's value in base units.
	Value uint64

	// KeyID is the key id extractable from the output's spending
	// script, or the zero KeyID if none could be extracted.
	KeyID KeyID
	// HasKeyID reports whether KeyID was actually extracted. A script
	// this node cannot parse yields HasKeyID == false even though
	// KeyID is the zero value.
	HasKeyID bool
}

// CoinView is the host-supplied UTXO view. GetOutput returns ok == false for
// a spent or unknown outpoint; the registry never synthesises candidates
// from any other source.
type CoinView interface {
	GetOutput(o Outpoint) (out Output, ok bool)
}

// isAcceptable applies the admission predicate: unspent,
// confirmed at least MinConfirmations, valued at least cfg.MinStake, and
// carrying an extractable key id.
func isAcceptable(o Outpoint, coins CoinView, cfg Config) (KeyID, uint64, bool) {
	out, ok := coins.GetOutput(o)
	if !ok {
		return KeyID{}, 0, false
	}

	if out.Confirmations < MinConfirmations {
		return KeyID{}, 0, false
	}

	if out.Value < cfg.MinStake {
		return KeyID{}, 0, false
	}

	if !out.HasKeyID {
		return KeyID{}, 0, false
	}

	return out.KeyID, out.Value, true
}
