package masternode

import (
	"math"
	"sort"
)

// scoredOutpoint pairs a candidate outpoint with its stake-adjusted score,
// the ordering key used for voting. Ties are broken by outpoint so that the
// ordering is total: two distinct outpoints are never considered equal by
// less, which setDifference below relies on to treat "equal under less" as
// "the same candidate".
type scoredOutpoint struct {
	o     Outpoint
	score float64
}

func less(a, b scoredOutpoint) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.o.Less(b.o)
}

// scoreCandidates resolves and stake-adjusted-scores every outpoint in os,
// silently dropping outpoints that cannot presently be scored: an
// unresolvable elected outpoint has already failed the registry's
// acceptability predicate and been pruned, so it cannot be compared against
// known candidates here (see DESIGN.md); such an outpoint remains elected
// until a future add/remove vote round changes it once it (or its
// replacement) becomes comparable again.
//
// requireEligible additionally drops any outpoint whose raw (pre-stake-
// adjustment) score exceeds MaxScore. This is the candidate-pool filter: a
// candidate scoring above the ceiling is excluded from consideration for
// addition, but the same filter must not be applied when scoring the
// currently-elected set, since an already-elected masternode that has
// drifted past MaxScore is still a candidate for removal, not simply
// invisible.
func (c *Core) scoreCandidates(os []Outpoint, tip, initialHeight int64, requireEligible bool) []scoredOutpoint {
	out := make([]scoredOutpoint, 0, len(os))
	for _, o := range os {
		cand, err := c.registry.Get(o)
		if err != nil {
			continue
		}
		score, err := cand.Score(tip, initialHeight, c.index, c.annex)
		if err != nil {
			continue
		}
		if requireEligible && score > MaxScore {
			continue
		}
		out = append(out, scoredOutpoint{o: o, score: StakeAdjustedScore(score, cand.Amount)})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// setDifference performs the merge walk over two ascending scoredOutpoint
// sequences: elements strictly-less-in-elected go
// to remove, strictly-less-in-known go to add, and equal elements (the same
// outpoint, by the total order less establishes) are skipped.
func setDifference(elected, known []scoredOutpoint) (add, remove []Outpoint) {
	i, j := 0, 0
	for i < len(elected) && j < len(known) {
		switch {
		case less(elected[i], known[j]):
			remove = append(remove, elected[i].o)
			i++
		case less(known[j], elected[i]):
			add = append(add, known[j].o)
			j++
		default:
			i++
			j++
		}
	}
	for ; i < len(elected); i++ {
		remove = append(remove, elected[i].o)
	}
	for ; j < len(known); j++ {
		add = append(add, known[j].o)
	}
	return add, remove
}

// CastVotes produces the add/remove vote vectors to embed in the next
// locally produced block. It returns empty vectors before the monitoring
// warm-up period has elapsed.
func (c *Core) CastVotes() (add, remove []Outpoint) {
	c.mu.Lock()
	tip := c.index.TipHeight()
	initialHeight := c.initialHeight
	initialHeightSet := c.initialHeightSet
	electedSnapshot := c.elected.Slice()
	c.mu.Unlock()

	if !initialHeightSet || tip < initialHeight+MonitoringPeriodMin {
		return nil, nil
	}

	c.registry.Prune()

	known := c.scoreCandidates(candidateOutpoints(c.registry), tip, initialHeight, true)
	if len(known) > c.cfg.MaxMasternodes {
		known = known[:c.cfg.MaxMasternodes]
	}

	electedScored := c.scoreCandidates(electedSnapshot, tip, initialHeight, false)

	add, remove = setDifference(electedScored, known)

	// The merge emits additions in ascending (worst-first) score order;
	// reverse so the best-scoring additions are first, since the
	// MaxVotes cap below truncates from the end.
	reverseOutpoints(add)

	total := len(add) + len(remove)
	if total > c.cfg.MaxVotes {
		var addSlots int
		switch {
		case len(add) == 0:
			addSlots = 0
		case len(remove) == 0:
			addSlots = c.cfg.MaxVotes
		default:
			addSlots = int(math.Round(float64(len(add)) * float64(c.cfg.MaxVotes) / float64(total)))
			addSlots = clamp(addSlots, 1, c.cfg.MaxVotes-1)
		}

		add = truncate(add, addSlots)
		remove = truncate(remove, c.cfg.MaxVotes-addSlots)
	}

	return add, remove
}

func candidateOutpoints(r *Registry) []Outpoint {
	all := r.All()
	out := make([]Outpoint, len(all))
	for i, c := range all {
		out[i] = c.Outpoint
	}
	return out
}

func reverseOutpoints(os []Outpoint) {
	for i, j := 0, len(os)-1; i < j; i, j = i+1, j-1 {
		os[i], os[j] = os[j], os[i]
	}
}

func truncate(os []Outpoint, n int) []Outpoint {
	if n < 0 {
		n = 0
	}
	if n > len(os) {
		n = len(os)
	}
	return os[:n]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
