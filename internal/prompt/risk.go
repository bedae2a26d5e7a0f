package prompt

// RiskBand classifies a quiz score for the HTML report banner.
type RiskBand struct {
	Level string
	Label string
	Color string
	Emoji string
}

var (
	// HighRisk covers scores below 3.
	HighRisk = RiskBand{Level: "high", Label: "High risk", Color: "red", Emoji: "🛑"}
	// ModerateRisk covers scores from 3 up to, but excluding, 7.
	ModerateRisk = RiskBand{Level: "moderate", Label: "Moderate risk", Color: "yellow", Emoji: "⚠️"}
	// LowRisk covers scores of 7 and above.
	LowRisk = RiskBand{Level: "low", Label: "Low risk", Color: "green", Emoji: "✅"}
)

// BandFor maps a score to its risk band: [0,3) high, [3,7) moderate, [7,10] low.
func BandFor(score float64) RiskBand {
	switch {
	case score < 3:
		return HighRisk
	case score < 7:
		return ModerateRisk
	default:
		return LowRisk
	}
}
