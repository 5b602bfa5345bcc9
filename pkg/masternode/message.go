package masternode

import "github.com/ethereum/go-ethereum/rlp"

// ExistenceMsg is a signed attestation that the candidate at Outpoint
// observed the block at (BlockHeight, BlockHash). It is the "mnexists" wire
// message.
type ExistenceMsg struct {
	Outpoint    Outpoint
	BlockHeight int64
	BlockHash   Hash
	Signature   Sig
}

// encode RLP-encodes the message, optionally with the signature, mirroring
// the Block/BlockProposal Encode(withSig bool) pattern used here to produce
// the signing hash (excludes the signature) and identity hash (includes
// it). rlp encodes only unsigned integers, so BlockHeight is encoded as its
// uint64 conversion.
func (m *ExistenceMsg) encode(withSig bool) []byte {
	en := struct {
		Outpoint    Outpoint
		BlockHeight uint64
		BlockHash   Hash
		Signature   Sig
	}{m.Outpoint, uint64(m.BlockHeight), m.BlockHash, m.Signature}
	if !withSig {
		en.Signature = nil
	}

	b, err := rlp.EncodeToBytes(&en)
	if err != nil {
		// The encoded struct contains only fixed-size unsigned fields
		// and a byte slice; encoding cannot fail.
		panic(err)
	}
	return b
}

// SigningHash is the hash signed by the candidate's private key. It
// excludes the signature itself.
func (m *ExistenceMsg) SigningHash() Hash {
	return SHA3(m.encode(false))
}

// IdentityHash is used for gossip dedup and per-peer relay memory. It
// includes the signature, so that two otherwise-identical messages signed
// with different nonces are not confused with each other.
func (m *ExistenceMsg) IdentityHash() Hash {
	return SHA3(m.encode(true))
}

// Sign signs the message's signing hash with sk and stores the resulting
// signature.
func (m *ExistenceMsg) Sign(sk SK) error {
	sig, err := sk.Sign(m.SigningHash())
	if err != nil {
		return err
	}
	m.Signature = sig
	return nil
}

// RecoveredKeyID recovers the public key that produced m.Signature over
// m.SigningHash and returns its key id.
func (m *ExistenceMsg) RecoveredKeyID() (KeyID, error) {
	pk, err := m.Signature.Recover(m.SigningHash())
	if err != nil {
		return KeyID{}, err
	}
	return pk.KeyID(), nil
}

// ReceivedExistenceMsg pairs a gossiped message with the local monotone
// clock reading at the time it was admitted to a candidate's liveness log.
type ReceivedExistenceMsg struct {
	Msg      ExistenceMsg
	RecvTime int64 // milliseconds, from a monotone clock
}
