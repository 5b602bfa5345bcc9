package masternode

import "time"

var processStart = time.Now()

// monotoneNowMs returns milliseconds elapsed on the local monotone clock.
// time.Now() carries a monotonic reading on every supported platform, so
// subtracting a fixed start time gives a monotone millisecond counter, not
// synchronised across nodes, without reaching for a third-party clock
// package.
func monotoneNowMs() int64 {
	return time.Since(processStart).Milliseconds()
}
