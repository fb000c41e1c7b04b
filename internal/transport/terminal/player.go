package terminal

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

// Player runs one interactive quiz over line-oriented input.
type Player struct {
	service  *app.QuizService
	renderer *Renderer
	in       io.Reader
	logger   *slog.Logger

	mu sync.Mutex
}

func NewPlayer(service *app.QuizService, renderer *Renderer, in io.Reader, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{service: service, renderer: renderer, in: in, logger: logger}
}

// Run plays bankID until the user quits, input ends, or ctx is canceled.
func (p *Player) Run(ctx context.Context, bankID string) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	c, _, err := p.service.Start(ctx, bankID)
	if err != nil {
		return err
	}
	sessionID := c.ID()
	defer p.service.End(ctx, sessionID)
	p.logger.Debug("quiz started", "session", sessionID, "bank", bankID)

	updates, cancel, err := p.service.Subscribe(ctx, sessionID)
	if err != nil {
		return err
	}
	renderDone := make(chan struct{})
	go func() {
		defer close(renderDone)
		for snap := range updates {
			p.draw(snap)
		}
	}()
	defer func() {
		cancel()
		<-renderDone
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		if line == "q" {
			if !p.current(ctx, sessionID).ConfirmLeave {
				return nil
			}
			p.message("Leave the quiz? Your progress will be lost. [y/N]")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case answer, ok := <-lines:
				if !ok || strings.EqualFold(answer, "y") {
					return nil
				}
			}
			continue
		}
		if err := p.handle(ctx, sessionID, bankID, line); err != nil {
			p.message("! %v", err)
			continue
		}
		snap, err := p.service.Snapshot(ctx, sessionID)
		if err != nil {
			return err
		}
		p.draw(snap)
	}
}

func (p *Player) handle(ctx context.Context, sessionID, bankID, line string) error {
	switch line {
	case "n":
		return p.service.Next(ctx, sessionID)
	case "p":
		return p.service.Previous(ctx, sessionID)
	case "s":
		_, err := p.service.Submit(ctx, sessionID)
		return err
	case "r":
		_, err := p.service.Restart(ctx, sessionID, bankID)
		return err
	case "h":
		p.mu.Lock()
		p.renderer.ToggleHint()
		p.mu.Unlock()
		return nil
	case "":
		return nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return errUnknownCommand(line)
	}
	return p.service.SelectAnswer(ctx, sessionID, p.current(ctx, sessionID).CurrentIndex, n-1)
}

func (p *Player) draw(snap domain.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderer.Render(snap)
}

func (p *Player) message(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderer.Message(format, args...)
}

func (p *Player) current(ctx context.Context, sessionID string) domain.Snapshot {
	snap, _ := p.service.Snapshot(ctx, sessionID)
	return snap
}

type errUnknownCommand string

func (e errUnknownCommand) Error() string {
	return "unknown command " + strconv.Quote(string(e))
}
