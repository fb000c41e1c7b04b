package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"timed-quiz-service/internal/domain"
)

// SessionRepository abstracts where live quiz controllers are registered (in-memory, Redis, etc).
type SessionRepository interface {
	Put(c *Controller)
	Get(sessionID string) (*Controller, bool)
	Delete(sessionID string)
}

// BankRepository loads question banks (from cache/backing store) and appends to them.
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
	AppendQuestion(ctx context.Context, bankID string, q domain.Question) (domain.Bank, error)
}

// QuizService contains the quiz use cases, routed by session ID.
type QuizService struct {
	sessions  SessionRepository
	banks     BankRepository
	scheduler Scheduler
	opts      Options
	logger    *slog.Logger
}

func NewQuizService(store SessionRepository, banks BankRepository, scheduler Scheduler, opts Options) *QuizService {
	opts = opts.withDefaults()
	return &QuizService{
		sessions:  store,
		banks:     banks,
		scheduler: scheduler,
		opts:      opts,
		logger:    opts.Logger,
	}
}

// Start loads the bank and begins a new session on it.
func (s *QuizService) Start(ctx context.Context, bankID string) (*Controller, domain.Bank, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return nil, domain.Bank{}, err
	}

	c := NewController(uuid.NewString(), s.scheduler, s.opts)
	if err := c.Initialize(bank.Questions); err != nil {
		return nil, domain.Bank{}, fmt.Errorf("start bank %s: %w", bankID, err)
	}
	s.sessions.Put(c)
	return c, bank, nil
}

// Restart replaces the session with a fresh one on the bank's current contents.
func (s *QuizService) Restart(ctx context.Context, sessionID, bankID string) (domain.Bank, error) {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return domain.Bank{}, domain.ErrSessionNotFound
	}
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return domain.Bank{}, err
	}
	if err := s.RestartWith(ctx, sessionID, bank); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}

// RestartWith replaces the session with a fresh one on an already loaded bank.
// Callers that announce the bank to a client do so before the first snapshot.
func (s *QuizService) RestartWith(_ context.Context, sessionID string, bank domain.Bank) error {
	c, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if err := c.Initialize(bank.Questions); err != nil {
		return fmt.Errorf("restart bank %s: %w", bank.ID, err)
	}
	// re-register to refresh any liveness marker
	s.sessions.Put(c)
	return nil
}

func (s *QuizService) SelectAnswer(_ context.Context, sessionID string, questionIndex, optionIndex int) error {
	c, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return c.SelectAnswer(questionIndex, optionIndex)
}

func (s *QuizService) Next(_ context.Context, sessionID string) error {
	c, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return c.Next()
}

func (s *QuizService) Previous(_ context.Context, sessionID string) error {
	c, err := s.controller(sessionID)
	if err != nil {
		return err
	}
	return c.Previous()
}

func (s *QuizService) Submit(_ context.Context, sessionID string) (domain.Result, error) {
	c, err := s.controller(sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	result, err := c.Submit()
	if err != nil {
		return domain.Result{}, err
	}
	// a session on its results view is still live
	s.sessions.Put(c)
	return result, nil
}

func (s *QuizService) Stats(_ context.Context, sessionID string) (domain.Stats, error) {
	c, err := s.controller(sessionID)
	if err != nil {
		return domain.Stats{}, err
	}
	return c.Stats(), nil
}

func (s *QuizService) Snapshot(_ context.Context, sessionID string) (domain.Snapshot, error) {
	c, err := s.controller(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return c.Snapshot(), nil
}

// Subscribe returns a channel that receives snapshots for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan domain.Snapshot, func(), error) {
	c, err := s.controller(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := c.Subscribe()
	return ch, cancel, nil
}

// End stops the session's timers and forgets it.
func (s *QuizService) End(_ context.Context, sessionID string) {
	c, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	c.Close()
	s.sessions.Delete(sessionID)
}

// Bank returns the current contents of a bank.
func (s *QuizService) Bank(ctx context.Context, bankID string) (domain.Bank, error) {
	return s.banks.GetBank(ctx, bankID)
}

// AppendQuestion validates a draft and adds it to the bank. Running sessions
// keep their own copy and are unaffected.
func (s *QuizService) AppendQuestion(ctx context.Context, bankID string, draft domain.QuestionDraft) (domain.Question, error) {
	q, err := draft.Validate()
	if err != nil {
		s.logger.Warn("rejected question append", "bank", bankID, "err", err)
		return domain.Question{}, err
	}
	bank, err := s.banks.AppendQuestion(ctx, bankID, q)
	if err != nil {
		s.logger.Error("question append failed", "bank", bankID, "err", err)
		return domain.Question{}, err
	}
	s.logger.Info("question added", "bank", bankID, "questions", len(bank.Questions))
	return q, nil
}

func (s *QuizService) controller(sessionID string) (*Controller, error) {
	c, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return c, nil
}
