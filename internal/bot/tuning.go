package bot

// Tuning holds the weights used by CountingBot. Lower scores are preferred.
type Tuning struct {
	RankWeight   int
	SplitPenalty int
	// GroupBonus rewards each extra card dumped when leading.
	GroupBonus int
	// BossBonus rewards moves nobody can cover once the hand is small.
	BossBonus    int
	EndgameCards int
	// PassAbove makes the bot pass on a response scoring at least this much.
	PassAbove int
	// HoldTwos keeps Twos back while more than this many other cards remain.
	HoldTwos        int
	ThreatThreshold int
}

// DefaultTuning is the HARD difficulty.
var DefaultTuning = Tuning{
	RankWeight:      10,
	SplitPenalty:    25,
	GroupBonus:      6,
	BossBonus:       40,
	EndgameCards:    4,
	PassAbove:       130,
	HoldTwos:        3,
	ThreatThreshold: 2,
}
