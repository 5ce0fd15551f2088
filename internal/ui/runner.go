package ui

import (
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for a command run
type RunnerConfig struct {
	Title      string            // Command title (e.g., "Host Sheet")
	Command    string            // Full command (e.g., "jeopardy deal")
	Params     map[string]string // Parameters to display in header
	TotalSteps int               // Total number of steps (for progress)
	StepNames  []string          // Names for each step
	Output     io.Writer         // Output writer (default: os.Stdout)

	// Troubleshoot maps a failure to tips for the failure box
	Troubleshoot func(error) []string
}

// Runner orchestrates the header, progress and result output of a
// non-interactive command.
type Runner struct {
	config    RunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	startTime time.Time
	width     int
}

// NewRunner creates a new runner
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	var prog *Progress
	if config.TotalSteps > 0 {
		prog = NewProgress("", config.TotalSteps)
		prog.SetWidth(width)
		for i, name := range config.StepNames {
			if i < len(prog.Steps) {
				prog.Steps[i].Name = name
			}
		}
	}

	return &Runner{
		config:   config,
		header:   header,
		progress: prog,
		output:   config.Output,
		width:    width,
	}
}

// SetWidth overrides the detected terminal width
func (r *Runner) SetWidth(width int) *Runner {
	r.width = width
	r.header.SetWidth(width)
	if r.progress != nil {
		r.progress.SetWidth(width)
	}
	return r
}

// Operation is the work a Runner wraps. It reports progress through onStep
// and returns the details to show on success.
type Operation func(onStep StepCallback) (map[string]string, error)

// Run prints the header, executes the operation and prints the result box.
func (r *Runner) Run(operation Operation) error {
	r.startTime = time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := operation(r.stepCallback())
	duration := time.Since(r.startTime)

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		var tips []string
		if r.config.Troubleshoot != nil {
			tips = r.config.Troubleshoot(err)
		}
		result := NewFailureResult(r.config.Title+" failed", err, tips)
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
		return err
	}

	if details == nil {
		details = make(map[string]string)
	}
	details["Duration"] = duration.Round(time.Millisecond).String()

	result := NewSuccessResult(r.config.Title+" complete", details)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())
	return nil
}

// stepCallback prints each step line once it settles
func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil || stepNumber < 1 || stepNumber > len(r.progress.Steps) {
			return
		}

		if name != "" {
			r.progress.Steps[stepNumber-1].Name = name
		}
		r.progress.UpdateStep(stepNumber, status, message)

		step := r.progress.Steps[stepNumber-1]
		switch status {
		case StepComplete, StepFailed:
			_, _ = fmt.Fprintln(r.output, r.progress.RenderStep(step))
		case StepRunning:
			// overwritten when the step completes
			_, _ = fmt.Fprint(r.output, r.progress.RenderStep(step)+"\r")
		}
	}
}
