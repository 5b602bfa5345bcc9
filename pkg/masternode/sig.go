package masternode

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto/secp256k1"
)

// KeyIDBytes is the width of a key id, the hash of a public key that
// identifies the address controlling a staking output.
const KeyIDBytes = 20

// KeyID identifies the public key controlling a candidate's staking output.
type KeyID [KeyIDBytes]byte

// SK is a serialized secp256k1 private key.
type SK []byte

// PK is a serialized, uncompressed secp256k1 public key.
type PK []byte

// Sig is a 65-byte compact recoverable secp256k1 signature: 64 bytes of
// (r, s) followed by a one-byte recovery id, exactly the format
// secp256k1.Sign returns.
type Sig []byte

// ErrInvalidSignature is returned when a signature cannot be parsed or does
// not recover to a public key.
var ErrInvalidSignature = errors.New("masternode: invalid signature")

// RandKeyPair generates a fresh secp256k1 key pair, used by tests and by
// operators provisioning a new local candidate.
func RandKeyPair() (PK, SK, error) {
	key, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	pub := elliptic.Marshal(secp256k1.S256(), key.X, key.Y)
	return PK(pub), SK(math.PaddedBigBytes(key.D, 32)), nil
}

// KeyID returns the key id (hash160-style identifier) of the public key.
func (p PK) KeyID() KeyID {
	h := SHA3(p)
	var id KeyID
	copy(id[:], h[hashBytes-KeyIDBytes:])
	return id
}

// Sign signs the 32-byte digest, returning a compact recoverable signature.
func (s SK) Sign(digest Hash) (Sig, error) {
	sig, err := secp256k1.Sign(digest[:], s)
	if err != nil {
		return nil, err
	}
	return Sig(sig), nil
}

// Recover recovers the public key that produced sig over digest. Since
// this package's transport does not carry a public key on the wire,
// recovery followed by a key-id comparison against the registry is how
// forgery is detected in gossip.go.
func (s Sig) Recover(digest Hash) (PK, error) {
	if len(s) != 65 {
		return nil, ErrInvalidSignature
	}

	pub, err := secp256k1.RecoverPubkey(digest[:], s)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	return PK(pub), nil
}
