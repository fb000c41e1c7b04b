package app_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
)

func TestStartAndSubmit(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(nil)

	c, bank, err := service.Start(ctx, "bank-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(bank.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(bank.Questions))
	}

	for q, opt := range []int{1, 0, 2, 0} {
		if err := service.SelectAnswer(ctx, c.ID(), q, opt); err != nil {
			t.Fatalf("select %d failed: %v", q, err)
		}
	}
	result, err := service.Submit(ctx, c.ID())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 3 || result.Percentage != 75 || result.Tier != domain.TierGood {
		t.Fatalf("expected 3/75%%/good, got %+v", result)
	}
}

func TestUnknownSessionIsRejected(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(nil)

	if err := service.Next(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session error, got %v", err)
	}
	if _, err := service.Submit(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session error, got %v", err)
	}
	if _, _, err := service.Start(ctx, "bank-unknown"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected bank error, got %v", err)
	}
}

func TestEndCancelsTimersAndForgetsSession(t *testing.T) {
	ctx := context.Background()
	service, store, sched := newTestService(nil)

	c, _, err := service.Start(ctx, "bank-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if sched.Live() != 2 {
		t.Fatalf("expected 2 live timers, got %d", sched.Live())
	}

	service.End(ctx, c.ID())
	if sched.Live() != 0 {
		t.Fatalf("expected timers stopped, got %d", sched.Live())
	}
	if _, ok := store.Get(c.ID()); ok {
		t.Fatalf("expected session removed")
	}
}

func TestAppendQuestionAffectsOnlyNewSessions(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(nil)

	running, _, err := service.Start(ctx, "bank-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	prompt, hint := "Pick yes", "Affirmative"
	correct, limit := 0, 15
	if _, err := service.AppendQuestion(ctx, "bank-1", domain.QuestionDraft{
		Prompt:    &prompt,
		Options:   []string{"yes", "no"},
		Correct:   &correct,
		Hint:      &hint,
		TimeLimit: &limit,
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if total := running.Snapshot().Total; total != 4 {
		t.Fatalf("running session bank changed: %d questions", total)
	}
	fresh, _, err := service.Start(ctx, "bank-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if total := fresh.Snapshot().Total; total != 5 {
		t.Fatalf("expected new session with 5 questions, got %d", total)
	}

	if _, err := service.Restart(ctx, running.ID(), "bank-1"); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if total := running.Snapshot().Total; total != 5 {
		t.Fatalf("expected restarted session with 5 questions, got %d", total)
	}
}

func TestAppendQuestionRejectsMalformedAndLogs(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	service, _, _ := newTestService(slog.New(slog.NewTextHandler(&logs, nil)))

	prompt := "Only one option"
	_, err := service.AppendQuestion(ctx, "bank-1", domain.QuestionDraft{
		Prompt:  &prompt,
		Options: []string{"lonely"},
	})
	if !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected invalid question, got %v", err)
	}
	if !strings.Contains(logs.String(), "rejected question append") {
		t.Fatalf("expected rejection logged, got %q", logs.String())
	}

	bank, err := service.Bank(ctx, "bank-1")
	if err != nil {
		t.Fatalf("bank failed: %v", err)
	}
	if len(bank.Questions) != 4 {
		t.Fatalf("expected bank unchanged, got %d questions", len(bank.Questions))
	}
}

func TestServiceStatsAndSubscribe(t *testing.T) {
	ctx := context.Background()
	service, _, sched := newTestService(nil)

	c, _, err := service.Start(ctx, "bank-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	ch, cancel, err := service.Subscribe(ctx, c.ID())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()
	<-ch // initial snapshot

	if err := service.Next(ctx, c.ID()); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	update := <-ch
	if update.CurrentIndex != 1 {
		t.Fatalf("expected index 1, got %d", update.CurrentIndex)
	}

	sched.Tick()
	stats, err := service.Stats(ctx, c.ID())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.CurrentQuestion != 2 || stats.TimeRemaining != 599 || stats.ProgressPercentage != 50 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func newTestService(logger *slog.Logger) (*app.QuizService, *memory.SessionStore, *manualScheduler) {
	sessionStore := memory.NewSessionStore()
	bankRepo := memory.NewBankRepository(memory.NewStaticBankLoader(domain.Bank{
		ID:        "bank-1",
		Questions: fourQuestions(),
	}), 5*time.Minute)
	sched := newManualScheduler()
	return app.NewQuizService(sessionStore, bankRepo, sched, app.Options{Logger: logger}), sessionStore, sched
}
