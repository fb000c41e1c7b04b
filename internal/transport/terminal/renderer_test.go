package terminal

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRenderQuestionFrame(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)
	selected := 1

	r.Render(domain.Snapshot{
		Active:            true,
		CurrentIndex:      1,
		Total:             4,
		Question:          domain.QuestionView{Prompt: "What is 2 + 2?", Options: []string{"3", "4"}, Hint: "Even"},
		Selected:          &selected,
		Answered:          2,
		GlobalRemaining:   545,
		QuestionRemaining: 9,
		Urgency:           domain.UrgencyCritical,
		Progress:          50,
		CanPrevious:       true,
		CanNext:           true,
	})

	frame := out.String()
	assert.Contains(t, frame, "Question 2 of 4")
	assert.Contains(t, frame, "9:05")
	assert.Contains(t, frame, "time left: 9s")
	assert.Contains(t, frame, "[##########----------] 50%")
	assert.Contains(t, frame, "[x] 2) 4")
	assert.Contains(t, frame, "[ ] 1) 3")
	assert.Contains(t, frame, "2/4 answered")
	assert.NotContains(t, frame, "hint:")

	out.Reset()
	require.True(t, r.ToggleHint())
	r.Render(domain.Snapshot{Total: 1, Question: domain.QuestionView{Prompt: "Q", Options: []string{"a", "b"}, Hint: "Even"}})
	assert.Contains(t, out.String(), "hint: Even")
}

func TestRenderResultView(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, true)

	res := domain.Result{
		Score:      3,
		Total:      4,
		Percentage: 75,
		Tier:       domain.TierGood,
		Message:    domain.TierMessage(domain.TierGood, 75),
		Reason:     domain.ReasonGlobalTimeout,
	}
	r.Render(domain.Snapshot{Result: &res, Total: 4, Question: domain.QuestionView{Options: []string{"a"}}})

	frame := out.String()
	assert.True(t, strings.HasPrefix(frame, clearScreen))
	assert.Contains(t, frame, "Score: 3/4 (75%)")
	assert.Contains(t, frame, res.Message)
	assert.Contains(t, frame, "You scored 3 out of 4 questions correctly")
	assert.Contains(t, frame, "time ran out")
	assert.NotContains(t, frame, "Question 1 of")
}

func TestProgressBarClamps(t *testing.T) {
	assert.Equal(t, "[----] 0%", progressBar(-5, 4))
	assert.Equal(t, "[####] 100%", progressBar(140, 4))
}

func TestPlayerPlaysToResults(t *testing.T) {
	service := newTestService()
	var out bytes.Buffer
	player := NewPlayer(service, NewRenderer(&out, false), strings.NewReader("2\nn\n1\nh\ns\nq\n"), nil)

	require.NoError(t, player.Run(context.Background(), "bank-1"))

	output := out.String()
	assert.Contains(t, output, "hint: Colosseum")
	assert.Contains(t, output, "Score: 2/2 (100%)")
	assert.Contains(t, output, domain.TierMessage(domain.TierExcellent, 100))
}

func TestPlayerConfirmsQuitWhileActive(t *testing.T) {
	service := newTestService()
	var out bytes.Buffer
	player := NewPlayer(service, NewRenderer(&out, false), strings.NewReader("9\nzz\nq\nn\nq\ny\n"), nil)

	require.NoError(t, player.Run(context.Background(), "bank-1"))

	output := out.String()
	assert.Contains(t, output, "! "+domain.ErrOptionOutOfRange.Error())
	assert.Contains(t, output, `! unknown command "zz"`)
	assert.Equal(t, 2, strings.Count(output, "Leave the quiz?"))
	assert.NotContains(t, output, "Score:")
}

// idleScheduler never fires; timers stay at their initial values.
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

func newTestService() *app.QuizService {
	bank := domain.Bank{
		ID: "bank-1",
		Questions: []domain.Question{
			{Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5"}, Correct: 1, Hint: "Even", TimeLimit: 30},
			{Prompt: "Capital of Italy?", Options: []string{"Rome", "Milan"}, Correct: 0, Hint: "Colosseum", TimeLimit: 20},
		},
	}
	return app.NewQuizService(
		memory.NewSessionStore(),
		memory.NewBankRepository(memory.NewStaticBankLoader(bank), time.Minute),
		idleScheduler{},
		app.Options{},
	)
}
