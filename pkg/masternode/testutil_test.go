package masternode

// fakeBlock and fakeIndex are hand-built collaborator fakes in the
// teacher's chain_test.go style (myState/myUpdater), rather than a mocking
// framework.

type fakeBlock struct {
	height      int64
	hash        Hash
	parentHash  Hash
	addVotes    []Outpoint
	removeVotes []Outpoint
}

func (b *fakeBlock) Height() int64            { return b.height }
func (b *fakeBlock) Hash() Hash               { return b.hash }
func (b *fakeBlock) ParentHash() Hash         { return b.parentHash }
func (b *fakeBlock) AddVotes() []Outpoint     { return b.addVotes }
func (b *fakeBlock) RemoveVotes() []Outpoint  { return b.removeVotes }

type fakeIndex struct {
	blocks []*fakeBlock
}

// newFakeIndex builds a linear chain of n+1 blocks (heights 0..n), each
// hashed deterministically from its height so tests get reproducible
// schedules without needing real block content.
func newFakeIndex(n int64) *fakeIndex {
	idx := &fakeIndex{}
	var parent Hash
	for h := int64(0); h <= n; h++ {
		hash := SHA3([]byte("fake-block"), (&fakeBlock{height: h}).encodeHeight())
		idx.blocks = append(idx.blocks, &fakeBlock{height: h, hash: hash, parentHash: parent})
		parent = hash
	}
	return idx
}

func (b *fakeBlock) encodeHeight() []byte {
	out := make([]byte, 8)
	h := uint64(b.height)
	for i := 7; i >= 0; i-- {
		out[i] = byte(h)
		h >>= 8
	}
	return out
}

func (idx *fakeIndex) TipHeight() int64 {
	return idx.blocks[len(idx.blocks)-1].height
}

func (idx *fakeIndex) BlockAtHeight(height int64) (Block, bool) {
	if height < 0 || height >= int64(len(idx.blocks)) {
		return nil, false
	}
	return idx.blocks[height], true
}

// extend appends one more block, optionally carrying votes, and returns it.
func (idx *fakeIndex) extend(add, remove []Outpoint) *fakeBlock {
	parent := idx.blocks[len(idx.blocks)-1]
	h := parent.height + 1
	hash := SHA3([]byte("fake-block"), (&fakeBlock{height: h}).encodeHeight(), parent.hash[:])
	blk := &fakeBlock{height: h, hash: hash, parentHash: parent.hash, addVotes: add, removeVotes: remove}
	idx.blocks = append(idx.blocks, blk)
	return blk
}

func (idx *fakeIndex) truncate(height int64) {
	idx.blocks = idx.blocks[:height+1]
}

type fakeCoinView struct {
	outputs map[Outpoint]Output
}

func newFakeCoinView() *fakeCoinView {
	return &fakeCoinView{outputs: make(map[Outpoint]Output)}
}

func (v *fakeCoinView) GetOutput(o Outpoint) (Output, bool) {
	out, ok := v.outputs[o]
	return out, ok
}

func (v *fakeCoinView) put(o Outpoint, out Output) {
	v.outputs[o] = out
}

// acceptableOutput returns an Output that passes isAcceptable under cfg.
func acceptableOutput(cfg Config, keyID KeyID) Output {
	return Output{
		Confirmations: MinConfirmations,
		Value:         cfg.MinStake,
		KeyID:         keyID,
		HasKeyID:      true,
	}
}

func testOutpoint(seed byte) Outpoint {
	var o Outpoint
	o.Hash[0] = seed
	return o
}

type fakePeer struct {
	id    string
	sent  []*ExistenceMsg
	score int
}

func (p *fakePeer) ID() string { return p.id }

func (p *fakePeer) SendExistence(msg *ExistenceMsg) error {
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakePeer) Misbehaving(score int) {
	p.score += score
}
