package domain

import (
	"fmt"
	"math"
)

// Tier is a qualitative performance bucket.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
)

// Urgency is the presentation tier of the question countdown.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

const (
	warningThreshold  = 20
	criticalThreshold = 10
)

// Score counts questions whose recorded answer equals the correct option.
// Unanswered questions are absent from answers and never count.
func Score(questions []Question, answers map[int]int) int {
	score := 0
	for i, q := range questions {
		if chosen, ok := answers[i]; ok && chosen == q.Correct {
			score++
		}
	}
	return score
}

// Percentage rounds part/total*100 half away from zero.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// TierFor classifies a percentage; thresholds are checked top-down.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 90:
		return TierExcellent
	case percentage >= 70:
		return TierGood
	case percentage >= 50:
		return TierAverage
	default:
		return TierPoor
	}
}

// TierMessage is the feedback sentence shown with the results.
func TierMessage(tier Tier, percentage int) string {
	switch tier {
	case TierExcellent:
		return fmt.Sprintf("Excellent! You scored %d%%! You're a true knowledge master!", percentage)
	case TierGood:
		return fmt.Sprintf("Great job! You scored %d%%! Well done!", percentage)
	case TierAverage:
		return fmt.Sprintf("Not bad! You scored %d%%! Keep studying!", percentage)
	default:
		return fmt.Sprintf("You scored %d%%. Don't worry, practice makes perfect!", percentage)
	}
}

// UrgencyFor maps seconds left on the question timer to a display tier.
func UrgencyFor(remaining int) Urgency {
	switch {
	case remaining <= criticalThreshold:
		return UrgencyCritical
	case remaining <= warningThreshold:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func summaryLine(score, total int) string {
	return fmt.Sprintf("You scored %d out of %d questions correctly", score, total)
}
