package network

import (
	"encoding/gob"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coinbeam/masternode/pkg/masternode"
)

func pipePeers(t *testing.T, handler Handler) (*Peer, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	peer := NewPeer(server, handler)
	t.Cleanup(func() { client.Close() })
	return peer, client
}

func TestPeerSendExistenceWritesExistencePacket(t *testing.T) {
	h := &recordingHandler{}
	peer, client := pipePeers(t, h)

	done := make(chan struct{})
	go func() {
		var pac packet
		assert.NoError(t, gob.NewDecoder(client).Decode(&pac))
		assert.Equal(t, existenceArg, pac.T)
		close(done)
	}()

	msg := &masternode.ExistenceMsg{BlockHeight: 7}
	assert.NoError(t, peer.SendExistence(msg))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for packet")
	}
}

func TestPeerReadDispatchesExistenceToHandler(t *testing.T) {
	h := &recordingHandler{}
	_, client := pipePeers(t, h)

	data, err := gobEncode(masternode.ExistenceMsg{BlockHeight: 3})
	assert.NoError(t, err)
	assert.NoError(t, gob.NewEncoder(client).Encode(packet{T: existenceArg, Data: data}))

	assert.Eventually(t, func() bool { return len(h.received) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(3), h.received[0].BlockHeight)
}

func TestPeerRespondsToPing(t *testing.T) {
	h := &recordingHandler{}
	_, client := pipePeers(t, h)

	assert.NoError(t, gob.NewEncoder(client).Encode(packet{T: pingArg}))

	var pac packet
	assert.NoError(t, gob.NewDecoder(client).Decode(&pac))
	assert.Equal(t, pingRet, pac.T)
}

func TestPeerMisbehavingBansAtThreshold(t *testing.T) {
	h := &recordingHandler{}
	peer, client := pipePeers(t, h)

	peer.Misbehaving(banScore - 1)
	peer.Misbehaving(1)

	// The connection is closed once the accumulated score reaches
	// banScore; the client side observes this as a read failure.
	buf := make([]byte, 1)
	_, err := client.Read(buf)
	assert.Error(t, err)
}

func TestPeerIDIsRemoteAddr(t *testing.T) {
	h := &recordingHandler{}
	peer, _ := pipePeers(t, h)
	assert.NotEmpty(t, peer.ID())
}
