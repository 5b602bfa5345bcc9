package network

import "net"

// Network listens for and dials masternode peer connections over TCP, with
// the same two entry points as a typical peer-to-peer transport: Start to
// accept, Connect to dial.
type Network struct{}

// Start listens on addr, handing every accepted connection to onPeerConnect
// once wrapped as a Peer dispatching to handler.
func (n *Network) Start(addr string, onPeerConnect func(p *Peer), handler Handler) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				panic(err)
			}

			go func() {
				p := NewPeer(conn, handler)
				onPeerConnect(p)
			}()
		}
	}()

	return nil
}

// Connect dials addr and returns the resulting Peer.
func (n *Network) Connect(addr string, handler Handler) (*Peer, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	return NewPeer(conn, handler), nil
}
