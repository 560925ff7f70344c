package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter receives per-edge progress from long exports
type Reporter interface {
	Start(total int)
	Increment()
	Finish()
}

// Bar draws a progress bar on stderr
type Bar struct {
	desc string
	bar  *progressbar.ProgressBar
}

// New returns a Bar when enabled, nil otherwise.
// Callers treat a nil Reporter as "no progress".
func New(enabled bool, desc string) Reporter {
	if !enabled {
		return nil
	}
	return &Bar{desc: desc}
}

// ForEdges enables the bar only on a terminal and for meshes with at least threshold edges
func ForEdges(edges, threshold int, desc string) Reporter {
	if threshold <= 0 || edges < threshold {
		return nil
	}
	return New(IsTerminal(), desc)
}

func (p *Bar) Start(total int) {
	if total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(p.desc),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *Bar) Increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *Bar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// IsTerminal reports whether stderr is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
