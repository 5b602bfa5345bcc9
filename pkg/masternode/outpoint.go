package masternode

import (
	"fmt"
	"sort"
)

// TxHashBytes is the width of a transaction id.
const TxHashBytes = 32

// TxHash is a transaction id, as produced by the host chain's hashing
// scheme.
type TxHash [TxHashBytes]byte

func (h TxHash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// Outpoint identifies a staking output: the (txid, output index) pair that
// backs a masternode candidate. It is the candidate's identity throughout
// this package and is totally ordered lexicographically on (Hash, Index).
type Outpoint struct {
	Hash  TxHash
	Index uint32
}

// String renders the outpoint the way the rest of the log lines expect,
// "<hash>:<index>".
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// Less reports whether o sorts strictly before other in the lexicographic
// order used for the elected set and for tie-breaking scores.
func (o Outpoint) Less(other Outpoint) bool {
	if o.Hash != other.Hash {
		for i := range o.Hash {
			if o.Hash[i] != other.Hash[i] {
				return o.Hash[i] < other.Hash[i]
			}
		}
	}
	return o.Index < other.Index
}

// Equal reports whether o and other identify the same staking output.
func (o Outpoint) Equal(other Outpoint) bool {
	return o.Hash == other.Hash && o.Index == other.Index
}

// SortOutpoints sorts outpoints in place in ascending lexicographic order.
func SortOutpoints(outs []Outpoint) {
	sort.Slice(outs, func(i, j int) bool {
		return outs[i].Less(outs[j])
	})
}
