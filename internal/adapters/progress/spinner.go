package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// SpinnerProgress renders deploy and verify steps. Interactive sessions get
// a spinner with the running step; everything else gets one line per step.
type SpinnerProgress struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	stage       string
	stageStart  time.Time
}

// NewSpinnerProgress creates a progress sink writing to out
func NewSpinnerProgress(out io.Writer, interactive bool) *SpinnerProgress {
	p := &SpinnerProgress{out: out, interactive: interactive}
	if interactive {
		p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
		p.spinner.HideCursor = false
	}
	return p
}

// OnProgress handles progress events
func (p *SpinnerProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != p.stage {
		p.completeStage()
		p.stage = event.Stage
		p.stageStart = time.Now()
	}

	message := event.Message
	if event.Total > 0 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}

	if !p.interactive {
		if message != "" {
			fmt.Fprintln(p.out, message)
		}
		return
	}

	if event.Spinner && message != "" {
		p.spinner.Suffix = " " + message
		if !p.spinner.Active() {
			p.spinner.Start()
		}
	} else if p.spinner.Active() {
		p.spinner.Stop()
	}
}

// Info prints an info message
func (p *SpinnerProgress) Info(message string) {
	p.pause(func() { color.New(color.FgCyan).Fprintln(p.out, message) })
}

// Error prints an error message
func (p *SpinnerProgress) Error(message string) {
	p.pause(func() { color.New(color.FgRed).Fprintln(p.out, message) })
}

// Stop halts the spinner if it is running
func (p *SpinnerProgress) Stop() {
	if p.spinner != nil && p.spinner.Active() {
		p.spinner.Stop()
	}
}

func (p *SpinnerProgress) pause(print func()) {
	wasActive := p.spinner != nil && p.spinner.Active()
	if wasActive {
		p.spinner.Stop()
	}
	print()
	if wasActive {
		p.spinner.Start()
	}
}

func (p *SpinnerProgress) completeStage() {
	if p.stage == "" || !p.interactive || p.stageStart.IsZero() {
		return
	}
	p.Stop()
	if p.spinner.Suffix != "" {
		elapsed := time.Since(p.stageStart).Round(time.Millisecond)
		fmt.Fprintf(p.out, "%s%s %s\n", color.GreenString("✓"), p.spinner.Suffix, color.New(color.Faint).Sprintf("(%s)", elapsed))
		p.spinner.Suffix = ""
	}
}

var _ usecase.ProgressSink = (*SpinnerProgress)(nil)
