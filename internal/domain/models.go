package domain

import "time"

// Question is an immutable multiple-choice question.
type Question struct {
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Correct   int      `json:"correct"`
	Hint      string   `json:"hint"`
	TimeLimit int      `json:"timeLimit"` // seconds
}

// Bank is an ordered, read-only sequence of questions.
type Bank struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// QuestionView is what a renderer may show; it never carries the correct index.
type QuestionView struct {
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Hint      string   `json:"hint"`
	TimeLimit int      `json:"timeLimit"`
}

// View strips the answer key from a question.
func (q Question) View() QuestionView {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return QuestionView{
		Prompt:    q.Prompt,
		Options:   options,
		Hint:      q.Hint,
		TimeLimit: q.TimeLimit,
	}
}

// Views returns the renderable form of every question in the bank.
func (b Bank) Views() []QuestionView {
	views := make([]QuestionView, 0, len(b.Questions))
	for _, q := range b.Questions {
		views = append(views, q.View())
	}
	return views
}

// SubmitReason records what ended a session. It never affects scoring.
type SubmitReason string

const (
	ReasonSubmitted       SubmitReason = "submitted"
	ReasonGlobalTimeout   SubmitReason = "global_timeout"
	ReasonQuestionTimeout SubmitReason = "question_timeout"
)

// Result is produced exactly once per session, on submission.
type Result struct {
	Score       int          `json:"score"`
	Total       int          `json:"total"`
	Percentage  int          `json:"percentage"`
	Tier        Tier         `json:"tier"`
	Message     string       `json:"message"`
	Reason      SubmitReason `json:"reason"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

// Summary is the results line shown under the score.
func (r Result) Summary() string {
	return summaryLine(r.Score, r.Total)
}

// Stats is the read-only progress query.
type Stats struct {
	TotalQuestions     int `json:"totalQuestions"`
	CurrentQuestion    int `json:"currentQuestion"` // 1-based
	AnsweredQuestions  int `json:"answeredQuestions"`
	TimeRemaining      int `json:"timeRemaining"`
	ProgressPercentage int `json:"progressPercentage"`
}

// Snapshot is everything a render collaborator needs to redraw.
type Snapshot struct {
	SessionID         string       `json:"sessionId"`
	Active            bool         `json:"active"`
	CurrentIndex      int          `json:"currentIndex"`
	Total             int          `json:"total"`
	Question          QuestionView `json:"question"`
	Selected          *int         `json:"selected,omitempty"`
	Answered          int          `json:"answered"`
	GlobalRemaining   int          `json:"globalRemaining"`
	QuestionRemaining int          `json:"questionRemaining"`
	Urgency           Urgency      `json:"urgency"`
	Progress          int          `json:"progress"`
	CanPrevious       bool         `json:"canPrevious"`
	CanNext           bool         `json:"canNext"`
	SubmitPrimary     bool         `json:"submitPrimary"`
	ConfirmLeave      bool         `json:"confirmLeave"`
	Result            *Result      `json:"result,omitempty"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}
