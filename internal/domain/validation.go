package domain

import (
	"fmt"
	"strings"
)

// QuestionDraft is an unvalidated question as received from an operator.
// Pointer fields distinguish "missing" from zero values.
type QuestionDraft struct {
	Prompt    *string  `json:"prompt"`
	Options   []string `json:"options"`
	Correct   *int     `json:"correct"`
	Hint      *string  `json:"hint"`
	TimeLimit *int     `json:"timeLimit"`
}

// Validate checks the draft's shape and returns the accepted question.
func (d QuestionDraft) Validate() (Question, error) {
	var missing []string
	if d.Prompt == nil {
		missing = append(missing, "prompt")
	}
	if d.Options == nil {
		missing = append(missing, "options")
	}
	if d.Correct == nil {
		missing = append(missing, "correct")
	}
	if d.Hint == nil {
		missing = append(missing, "hint")
	}
	if d.TimeLimit == nil {
		missing = append(missing, "timeLimit")
	}
	if len(missing) > 0 {
		return Question{}, fmt.Errorf("%w: missing %s", ErrInvalidQuestion, strings.Join(missing, ", "))
	}

	q := Question{
		Prompt:    *d.Prompt,
		Options:   append([]string(nil), d.Options...),
		Correct:   *d.Correct,
		Hint:      *d.Hint,
		TimeLimit: *d.TimeLimit,
	}
	if err := ValidateQuestion(q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// ValidateQuestion enforces the invariants every bank question must hold.
func ValidateQuestion(q Question) error {
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: need at least two options, got %d", ErrInvalidQuestion, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrInvalidQuestion, q.Correct)
	}
	if q.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidQuestion)
	}
	return nil
}

// ValidateBank checks a whole bank once, before any session uses it.
func ValidateBank(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	for i, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrInvalidBank, i, err)
		}
	}
	return nil
}
