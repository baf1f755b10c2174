package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"batchConverter/worker/policy"
	"batchConverter/worker/runner"
)

const megabyte = 1024 * 1024

// reporter renders events for a terminal and answers error events.
type reporter struct {
	out      io.Writer
	logger   *zap.Logger
	reaction policy.Reaction
	policy   *policy.ErrorPolicy
	cancel   func()
	summary  *runner.Summary
	errors   int
}

func (r *reporter) handle(ev runner.Event) {
	switch e := ev.(type) {
	case runner.ProgressEvent:
		fmt.Fprintf(r.out, "%3d%%  %s  %s\n", e.Percent, e.ETA, e.Speed)
	case runner.ErrorEvent:
		r.errors++
		r.logger.Warn(e.Message, zap.String("path", e.Path), zap.String("kind", string(e.Kind)))
		r.reaction.Apply(r.policy, e.Extension(), r.cancel)
	case runner.CompletionEvent:
		s := e.Summary
		r.summary = &s
		fmt.Fprint(r.out, formatSummary(s))
	}
}

func formatSummary(s runner.Summary) string {
	var ratio float64
	if s.TotalInputBytes > 0 {
		ratio = float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
	}

	title := "Conversion complete!"
	if s.State == runner.StateCancelled {
		title = "Conversion cancelled."
	}

	msg := title + "\n\n"
	msg += fmt.Sprintf("Files processed: %d successful, %d failed\n", s.SuccessCount, s.FailureCount)
	msg += fmt.Sprintf("Input size: %.2f MB\n", float64(s.TotalInputBytes)/megabyte)
	msg += fmt.Sprintf("Output size: %.2f MB\n", float64(s.TotalOutputBytes)/megabyte)
	msg += fmt.Sprintf("Compression ratio: %.1f%%\n", ratio)
	if s.LastOutputPath != "" {
		msg += fmt.Sprintf("Last output: %s\n", s.LastOutputPath)
	}
	return msg
}
