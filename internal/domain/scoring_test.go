package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIgnoresUnanswered(t *testing.T) {
	questions := []Question{
		{Options: []string{"a", "b"}, Correct: 1},
		{Options: []string{"a", "b"}, Correct: 1},
		{Options: []string{"a", "b", "c"}, Correct: 2},
		{Options: []string{"a", "b"}, Correct: 0},
	}

	assert.Equal(t, 3, Score(questions, map[int]int{0: 1, 1: 0, 2: 2, 3: 0}))
	assert.Equal(t, 0, Score(questions, map[int]int{}))
	// An answer of 0 on a question whose correct index is 0 counts only when recorded.
	assert.Equal(t, 0, Score(questions[3:], map[int]int{}))
	assert.Equal(t, 1, Score(questions[3:], map[int]int{0: 0}))
}

func TestPercentageRounds(t *testing.T) {
	assert.Equal(t, 75, Percentage(3, 4))
	assert.Equal(t, 43, Percentage(3, 7))
	assert.Equal(t, 57, Percentage(4, 7))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 0, Percentage(0, 0))
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		percentage int
		want       Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierGood},
		{70, TierGood},
		{69, TierAverage},
		{50, TierAverage},
		{49, TierPoor},
		{0, TierPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.percentage), "percentage %d", tc.percentage)
	}
}

func TestTierMessageMentionsPercentage(t *testing.T) {
	assert.Equal(t, "Great job! You scored 75%! Well done!", TierMessage(TierGood, 75))
	assert.Contains(t, TierMessage(TierPoor, 12), "12%")
}

func TestUrgencyThresholds(t *testing.T) {
	assert.Equal(t, UrgencyNormal, UrgencyFor(21))
	assert.Equal(t, UrgencyWarning, UrgencyFor(20))
	assert.Equal(t, UrgencyWarning, UrgencyFor(11))
	assert.Equal(t, UrgencyCritical, UrgencyFor(10))
	assert.Equal(t, UrgencyCritical, UrgencyFor(0))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "10:00", FormatClock(600))
	assert.Equal(t, "0:09", FormatClock(9))
	assert.Equal(t, "0:00", FormatClock(-3))
}
