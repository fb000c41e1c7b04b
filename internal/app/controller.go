package app

import (
	"log/slog"
	"sync"
	"time"

	"timed-quiz-service/internal/domain"
)

// DefaultGlobalDuration bounds a whole session, in seconds.
const DefaultGlobalDuration = 600

// Options tune a Controller. Zero values fall back to defaults.
type Options struct {
	GlobalDuration int           // seconds
	TickInterval   time.Duration // one countdown step
	Clock          func() time.Time
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.GlobalDuration <= 0 {
		o.GlobalDuration = DefaultGlobalDuration
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// session is one attempt. It is replaced, never reset, on restart.
type session struct {
	attempt           int
	questions         []domain.Question
	currentIndex      int
	answers           map[int]int
	score             int
	globalRemaining   int
	questionRemaining int
	active            bool
	startedAt         time.Time
	result            *domain.Result
}

// countdown is a live timer; its pointer identity is the stale-tick guard.
type countdown struct {
	stop func()
}

// Controller owns a single quiz session and its two timers.
// Every exported method runs to completion under mu, as do timer ticks.
type Controller struct {
	id        string
	opts      Options
	scheduler Scheduler
	logger    *slog.Logger

	mu            sync.Mutex
	attempts      int
	session       *session
	globalTimer   *countdown
	questionTimer *countdown
	subscribers   map[chan domain.Snapshot]struct{}
}

// NewController builds an idle controller; call Initialize to start a session.
func NewController(id string, scheduler Scheduler, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		id:          id,
		opts:        opts,
		scheduler:   scheduler,
		logger:      opts.Logger.With("session", id),
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
}

// ID returns the stable identifier shared by every attempt of this controller.
func (c *Controller) ID() string {
	return c.id
}

// Initialize discards any previous session and starts a fresh one at question 0.
func (c *Controller) Initialize(questions []domain.Question) error {
	if err := domain.ValidateBank(questions); err != nil {
		return err
	}
	bank := make([]domain.Question, len(questions))
	copy(bank, questions)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimersLocked()
	c.attempts++
	s := &session{
		attempt:         c.attempts,
		questions:       bank,
		answers:         make(map[int]int),
		globalRemaining: c.opts.GlobalDuration,
		active:          true,
		startedAt:       c.opts.Clock(),
	}
	c.session = s
	c.startGlobalLocked(s)
	c.showQuestionLocked(s, 0)

	c.logger.Info("quiz session started", "attempt", s.attempt, "questions", len(bank), "global_seconds", s.globalRemaining)
	c.broadcastLocked()
	return nil
}

// SelectAnswer records optionIndex for questionIndex; the last write wins.
func (c *Controller) SelectAnswer(questionIndex, optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.activeLocked()
	if err != nil {
		return err
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return domain.ErrQuestionOutOfRange
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[questionIndex].Options) {
		return domain.ErrOptionOutOfRange
	}
	s.answers[questionIndex] = optionIndex
	c.broadcastLocked()
	return nil
}

// Next advances one question. It is a no-op on the last question.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.activeLocked()
	if err != nil {
		return err
	}
	if s.currentIndex >= len(s.questions)-1 {
		return nil
	}
	c.showQuestionLocked(s, s.currentIndex+1)
	c.broadcastLocked()
	return nil
}

// Previous goes back one question. It is a no-op on the first question.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.activeLocked()
	if err != nil {
		return err
	}
	if s.currentIndex <= 0 {
		return nil
	}
	c.showQuestionLocked(s, s.currentIndex-1)
	c.broadcastLocked()
	return nil
}

// Submit scores the session and stops both timers. Repeated calls return the
// first result.
func (c *Controller) Submit() (domain.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		return domain.Result{}, domain.ErrSessionNotFound
	}
	if s.result != nil {
		return *s.result, nil
	}
	if !s.active {
		return domain.Result{}, domain.ErrSessionInactive
	}
	return c.submitLocked(s, domain.ReasonSubmitted), nil
}

// Result returns the submitted result, if any.
func (c *Controller) Result() (domain.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.result == nil {
		return domain.Result{}, false
	}
	return *c.session.result, true
}

// Active reports whether the current session still accepts input.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.active
}

// Snapshot returns the current render view.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Stats returns the progress summary for the current session.
func (c *Controller) Stats() domain.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		return domain.Stats{}
	}
	total := len(s.questions)
	return domain.Stats{
		TotalQuestions:     total,
		CurrentQuestion:    s.currentIndex + 1,
		AnsweredQuestions:  len(s.answers),
		TimeRemaining:      s.globalRemaining,
		ProgressPercentage: domain.Percentage(s.currentIndex+1, total),
	}
}

// Subscribe returns a channel of snapshots, primed with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close abandons the session: timers stop and subscribers are released.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimersLocked()
	if c.session != nil && c.session.active {
		c.session.active = false
		c.logger.Info("quiz session abandoned", "attempt", c.session.attempt)
	}
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Controller) activeLocked() (*session, error) {
	if c.session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !c.session.active {
		return nil, domain.ErrSessionInactive
	}
	return c.session, nil
}

// showQuestionLocked moves to idx and restarts the question countdown with
// that question's own budget.
func (c *Controller) showQuestionLocked(s *session, idx int) {
	c.stopQuestionLocked()
	s.currentIndex = idx
	s.questionRemaining = s.questions[idx].TimeLimit

	t := &countdown{}
	c.questionTimer = t
	t.stop = c.scheduler.Every(c.opts.TickInterval, func() { c.onQuestionTick(s, t) })
}

func (c *Controller) startGlobalLocked(s *session) {
	c.stopGlobalLocked()
	t := &countdown{}
	c.globalTimer = t
	t.stop = c.scheduler.Every(c.opts.TickInterval, func() { c.onGlobalTick(s, t) })
}

func (c *Controller) onGlobalTick(s *session, t *countdown) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != s || c.globalTimer != t || !s.active {
		return
	}
	s.globalRemaining--
	if s.globalRemaining <= 0 {
		s.globalRemaining = 0
		c.stopGlobalLocked()
		c.logger.Info("global time expired", "attempt", s.attempt)
		c.submitLocked(s, domain.ReasonGlobalTimeout)
		return
	}
	c.broadcastLocked()
}

func (c *Controller) onQuestionTick(s *session, t *countdown) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != s || c.questionTimer != t || !s.active {
		return
	}
	s.questionRemaining--
	if s.questionRemaining > 0 {
		c.broadcastLocked()
		return
	}

	s.questionRemaining = 0
	c.stopQuestionLocked()
	if s.currentIndex < len(s.questions)-1 {
		c.logger.Debug("question time expired, advancing", "attempt", s.attempt, "question", s.currentIndex)
		c.showQuestionLocked(s, s.currentIndex+1)
		c.broadcastLocked()
		return
	}
	c.logger.Info("last question time expired", "attempt", s.attempt)
	c.submitLocked(s, domain.ReasonQuestionTimeout)
}

func (c *Controller) submitLocked(s *session, reason domain.SubmitReason) domain.Result {
	c.stopTimersLocked()
	if s.result != nil {
		return *s.result
	}

	total := len(s.questions)
	score := domain.Score(s.questions, s.answers)
	percentage := domain.Percentage(score, total)
	tier := domain.TierFor(percentage)
	result := domain.Result{
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		Tier:        tier,
		Message:     domain.TierMessage(tier, percentage),
		Reason:      reason,
		SubmittedAt: c.opts.Clock(),
	}
	s.score = score
	s.active = false
	s.result = &result

	c.logger.Info("quiz submitted",
		"attempt", s.attempt,
		"score", score,
		"total", total,
		"percentage", percentage,
		"tier", tier,
		"reason", reason,
	)
	c.broadcastLocked()
	return result
}

func (c *Controller) stopTimersLocked() {
	c.stopGlobalLocked()
	c.stopQuestionLocked()
}

func (c *Controller) stopGlobalLocked() {
	if c.globalTimer != nil {
		c.globalTimer.stop()
		c.globalTimer = nil
	}
}

func (c *Controller) stopQuestionLocked() {
	if c.questionTimer != nil {
		c.questionTimer.stop()
		c.questionTimer = nil
	}
}

func (c *Controller) broadcastLocked() {
	snap := c.snapshotLocked()
	for ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the oldest pending snapshot; renderers only need the latest.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID: c.id,
		UpdatedAt: c.opts.Clock(),
	}
	s := c.session
	if s == nil {
		return snap
	}

	total := len(s.questions)
	snap.Active = s.active
	snap.CurrentIndex = s.currentIndex
	snap.Total = total
	snap.Question = s.questions[s.currentIndex].View()
	if chosen, ok := s.answers[s.currentIndex]; ok {
		selected := chosen
		snap.Selected = &selected
	}
	snap.Answered = len(s.answers)
	snap.GlobalRemaining = s.globalRemaining
	snap.QuestionRemaining = s.questionRemaining
	snap.Urgency = domain.UrgencyFor(s.questionRemaining)
	snap.Progress = domain.Percentage(s.currentIndex+1, total)
	snap.CanPrevious = s.active && s.currentIndex > 0
	snap.CanNext = s.active && s.currentIndex < total-1
	snap.SubmitPrimary = s.currentIndex == total-1
	snap.ConfirmLeave = s.active
	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}
	return snap
}
