package reputation

type credibilityStep struct {
	below float64
	level string
}

//nolint:gochecknoglobals
var credibilityLadder = []credibilityStep{
	{below: 800, level: "Untrusted"},
	{below: 1200, level: "Questionable"},
	{below: 1400, level: "Neutral"},
	{below: 1600, level: "Known"},
	{below: 1800, level: "Established"},
	{below: 2000, level: "Reputable"},
	{below: 2200, level: "Exemplary"},
	{below: 2400, level: "Distinguished"},
	{below: 2600, level: "Revered"},
}

// CredibilityLevel names the Ethos credibility band of a score. The bands are
// finer than tiers and carry no vote power.
func CredibilityLevel(score float64) string {
	for _, step := range credibilityLadder {
		if score < step.below {
			return step.level
		}
	}

	return "Renowned"
}
