package masternode

// Fixed, fork-sensitive constants. These must match across every node on the
// network; unlike Config below they are not host-parameterised.
const (
	// MinConfirmations is the minimum number of confirmations a staking
	// output must have before its candidate is admissible.
	MinConfirmations = 10

	// StartPayments is the minimum elected-set size required before the
	// core will ever select a payee for a block that had none before.
	StartPayments = 150

	// StopPayments is the minimum elected-set size required to keep
	// selecting a payee once one has already been selected.
	StopPayments = 100

	// ScheduleRestart is the number of blocks in one challenge window.
	ScheduleRestart = 20

	// SchedulePeriod is the spacing between challenge blocks inside a
	// window. ScheduleRestart must be a multiple of SchedulePeriod.
	SchedulePeriod = 5

	// MonitoringPeriod bounds how long a liveness message is retained
	// and how far back ancient gossip is tolerated.
	MonitoringPeriod = 100

	// MonitoringPeriodMin is the number of blocks of monitoring history
	// required before the node starts casting votes.
	MonitoringPeriodMin = 30

	// PenaltyTime is the assumed delay, in seconds, charged against a
	// candidate's score for an unanswered challenge block.
	PenaltyTime = 500.0

	// MaxScore is the score ceiling used to decide voting eligibility.
	MaxScore = 100.0

	// misbehavingScoreMultiple is applied to MaxScore to produce the
	// sentinel score of a candidate with the sticky misbehaving flag set.
	misbehavingScoreMultiple = 99.0

	// COIN is the number of base units in one coin, used to scale the
	// stake tie-break in scoring.
	COIN = 100000000

	// scoreCacheHorizon is how many blocks the tip may advance before a
	// candidate's cached score is invalidated; advancing further than
	// this invalidates it.
	scoreCacheHorizon = 5

	// spamMessageLimit is MonitoringPeriod/SchedulePeriod*10; a new
	// message is rejected as spam when more than this many existence
	// messages are already retained.
	spamMessageLimit = MonitoringPeriod / SchedulePeriod * 10

	// PeerScoreAncient is reported when a gossiped message is too old to
	// have ever been legitimately relayed.
	PeerScoreAncient = 20

	// PeerScoreUnknownCandidate is reported when a message names an
	// outpoint the registry cannot admit.
	PeerScoreUnknownCandidate = 20

	// PeerScoreForgery is reported when a message's signature does not
	// recover to the candidate's key id.
	PeerScoreForgery = 100

	// PeerScoreSpam is reported when a candidate's liveness log holds
	// more than spamMessageLimit distinct messages.
	PeerScoreSpam = 20
)

// Config carries the host-parameterised constants a deploying network must
// fix for itself. Unlike the constants above, these are not baked into the
// protocol by this module and must be agreed on out of band before launch.
type Config struct {
	// ElectionPeriod is the number of blocks preceding (and including)
	// a block's parent that are tallied for votes on connect.
	ElectionPeriod int

	// MaxVotes bounds the number of add- plus remove-votes a single
	// locally produced block may carry.
	MaxVotes int

	// MaxMasternodes bounds how many candidates CastVotes will ever
	// propose adding to the elected set.
	MaxMasternodes int

	// MinStake is the minimum output value, in base units, a staking
	// outpoint must carry to be admissible.
	MinStake uint64

	// HardForkHeight is the height after which masternode elections and
	// payee selection take effect. Blocks at or below it
	// never carry a payee and never apply votes.
	HardForkHeight int64
}

// DefaultConfig returns reasonable parameters for a small development
// network. Production deployments must agree on their own values and are
// expected to override every field.
func DefaultConfig() Config {
	return Config{
		ElectionPeriod: 2880,
		MaxVotes:       50,
		MaxMasternodes: 1000,
		MinStake:       1000 * COIN,
		HardForkHeight: 0,
	}
}
