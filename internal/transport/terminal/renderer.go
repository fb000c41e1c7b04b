package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"timed-quiz-service/internal/domain"
)

const clearScreen = "\033[H\033[2J"

var (
	titleColor    = color.New(color.FgCyan, color.Bold)
	warningColor  = color.New(color.FgYellow, color.Bold)
	criticalColor = color.New(color.FgRed, color.Bold)
	selectedColor = color.New(color.FgGreen)
	hintColor     = color.New(color.FgHiBlack, color.Italic)
	primaryColor  = color.New(color.FgBlack, color.BgGreen)
	disabledColor = color.New(color.FgHiBlack)
)

// Renderer draws snapshots as plain text frames.
type Renderer struct {
	out      io.Writer
	clear    bool
	showHint bool
}

func NewRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{out: out, clear: clear}
}

// ToggleHint flips hint visibility and reports the new state.
func (r *Renderer) ToggleHint() bool {
	r.showHint = !r.showHint
	return r.showHint
}

// Render draws either the question view or, once submitted, the results view.
func (r *Renderer) Render(s domain.Snapshot) {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	if s.Result != nil {
		writeResult(&b, *s.Result)
		io.WriteString(r.out, b.String())
		return
	}

	fmt.Fprintf(&b, "%s   total %s   %s\n",
		titleColor.Sprintf("Question %d of %d", s.CurrentIndex+1, s.Total),
		domain.FormatClock(s.GlobalRemaining),
		progressBar(s.Progress, 20),
	)
	fmt.Fprintf(&b, "time left: %s\n\n", urgencyColor(s.Urgency).Sprintf("%ds", s.QuestionRemaining))
	fmt.Fprintf(&b, "%s\n\n", s.Question.Prompt)
	for i, opt := range s.Question.Options {
		if s.Selected != nil && *s.Selected == i {
			b.WriteString(selectedColor.Sprintf("  [x] %d) %s", i+1, opt))
		} else {
			fmt.Fprintf(&b, "  [ ] %d) %s", i+1, opt)
		}
		b.WriteString("\n")
	}
	if r.showHint && s.Question.Hint != "" {
		fmt.Fprintf(&b, "\n%s\n", hintColor.Sprintf("hint: %s", s.Question.Hint))
	}
	fmt.Fprintf(&b, "\n%d/%d answered\n", s.Answered, s.Total)
	b.WriteString(navigation(s))
	b.WriteString("\n")
	io.WriteString(r.out, b.String())
}

// Message prints a single status line under the current frame.
func (r *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func writeResult(b *strings.Builder, res domain.Result) {
	b.WriteString(titleColor.Sprint("Quiz complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(b, "Score: %d/%d (%d%%)\n", res.Score, res.Total, res.Percentage)
	fmt.Fprintf(b, "%s\n", tierColor(res.Tier).Sprint(res.Message))
	fmt.Fprintf(b, "%s\n", res.Summary())
	if res.Reason != domain.ReasonSubmitted {
		fmt.Fprintf(b, "%s\n", warningColor.Sprint("time ran out"))
	}
	b.WriteString("\n[r] restart  [q] quit\n")
}

func navigation(s domain.Snapshot) string {
	parts := []string{
		enabled(s.CanPrevious, "[p] previous"),
		enabled(s.CanNext, "[n] next"),
	}
	submit := "[s] submit"
	if s.SubmitPrimary {
		submit = primaryColor.Sprint(submit)
	}
	parts = append(parts, submit, "[h] hint", "[q] quit")
	return strings.Join(parts, "  ")
}

func enabled(ok bool, label string) string {
	if ok {
		return label
	}
	return disabledColor.Sprint(label)
}

func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), pct)
}

func urgencyColor(u domain.Urgency) *color.Color {
	switch u {
	case domain.UrgencyCritical:
		return criticalColor
	case domain.UrgencyWarning:
		return warningColor
	default:
		return color.New(color.Reset)
	}
}

func tierColor(t domain.Tier) *color.Color {
	switch t {
	case domain.TierExcellent, domain.TierGood:
		return selectedColor
	case domain.TierAverage:
		return warningColor
	default:
		return criticalColor
	}
}
