package masternode

import "errors"

// ErrBlockNotFound is returned when a required block height cannot be
// resolved through the host's BlockIndex. It is a transient input-missing
// condition: callers should treat it as "unknown", never crash.
var ErrBlockNotFound = errors.New("masternode: block not found")

// ErrSyncing is returned by entry points that are no-ops while the node is
// still in initial block download.
var ErrSyncing = errors.New("masternode: node is syncing")
