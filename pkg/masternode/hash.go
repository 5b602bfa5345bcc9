package masternode

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const hashBytes = 32

// Hash is a SHA3-256 digest.
type Hash [hashBytes]byte

// SHA3 hashes the concatenation of the given byte slices.
func SHA3(bs ...[]byte) Hash {
	d := sha3.New256()
	for _, b := range bs {
		if _, err := d.Write(b); err != nil {
			// sha3.state.Write never errors.
			panic(err)
		}
	}

	var h Hash
	copy(h[:], d.Sum(nil))
	return h
}

// get64 returns the first 8 bytes of the hash as a big-endian uint64,
// mirroring the source's CHashWriter::GetHash().Get64(0) extraction used to
// derive the schedule shift in schedule.go.
func (h Hash) get64() uint64 {
	return binary.BigEndian.Uint64(h[:8])
}

// encode serialises an outpoint the same way for every hash this package
// takes over one, so that seed and signing-hash computations are stable.
func (o Outpoint) encode() []byte {
	b := make([]byte, TxHashBytes+4)
	copy(b, o.Hash[:])
	binary.BigEndian.PutUint32(b[TxHashBytes:], o.Index)
	return b
}
