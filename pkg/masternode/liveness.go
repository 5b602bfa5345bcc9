package masternode

import "sync"

// Verdict values returned by AddExistenceMsg. The sign carries the meaning:
// negative triggers relay, zero drops silently, positive drops and reports
// peer misbehaviour of that magnitude.
const (
	VerdictAdmitted  = -1
	VerdictDuplicate = 0
	VerdictSpam      = PeerScoreSpam
)

// livenessMu guards the mutable liveness-log fields of every Candidate.
// All core mutation is meant to run on a single cooperative thread, but the
// mutex is kept anyway because Candidate values are also read from
// CastVotes/GetScore, which may be invoked from a different goroutine than
// the gossip dispatchers. It is a single package-level lock shared by all
// candidates; taking it costs nothing on the single-threaded path and keeps
// the Registry's own lock out of scoring.
var livenessMu sync.Mutex

// AddExistenceMsg implements the Liveness Log's add operation, following
// CMasterNode::AddExistenceMsg in masternodes.cpp.
func (c *Candidate) AddExistenceMsg(msg ExistenceMsg, tipHeight int64) int {
	livenessMu.Lock()
	defer livenessMu.Unlock()

	identity := msg.IdentityHash()
	for _, existing := range c.existenceMsgs {
		if existing.Msg.IdentityHash() == identity {
			return VerdictDuplicate
		}
	}

	c.cleanupLocked(tipHeight)

	if len(c.existenceMsgs) > spamMessageLimit {
		c.misbehaving = true
		return VerdictSpam
	}

	c.existenceMsgs = append(c.existenceMsgs, ReceivedExistenceMsg{
		Msg:      msg,
		RecvTime: monotoneNowMs(),
	})
	return VerdictAdmitted
}

// Cleanup drops liveness-log entries older than 2*MonitoringPeriod blocks
// relative to tipHeight. Unlike the buggy source variant, this resizes the
// backing slice so expired entries are actually dropped.
func (c *Candidate) Cleanup(tipHeight int64) {
	livenessMu.Lock()
	defer livenessMu.Unlock()
	c.cleanupLocked(tipHeight)
}

func (c *Candidate) cleanupLocked(tipHeight int64) {
	kept := c.existenceMsgs[:0]
	for _, m := range c.existenceMsgs {
		if m.Msg.BlockHeight >= tipHeight-2*MonitoringPeriod {
			kept = append(kept, m)
		}
	}
	c.existenceMsgs = kept
}

// existenceMsgsSnapshot returns a copy of the current liveness log, for use
// by the scorer without holding livenessMu across the scoring loop.
func (c *Candidate) existenceMsgsSnapshot() []ReceivedExistenceMsg {
	livenessMu.Lock()
	defer livenessMu.Unlock()
	out := make([]ReceivedExistenceMsg, len(c.existenceMsgs))
	copy(out, c.existenceMsgs)
	return out
}
