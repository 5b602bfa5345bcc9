package masternode

// Block is the subset of a host chain block the core needs to read. Height,
// Hash and ParentHash come from the host's block-index linked chain, out of
// scope here and referenced only by interface; AddVotes/RemoveVotes are the
// two host-defined serialisation slots a locally produced block carries.
type Block interface {
	Height() int64
	Hash() Hash
	ParentHash() Hash
	AddVotes() []Outpoint
	RemoveVotes() []Outpoint
}

// BlockIndex is the host-supplied block-index lookup.
type BlockIndex interface {
	TipHeight() int64
	BlockAtHeight(height int64) (Block, bool)
}
