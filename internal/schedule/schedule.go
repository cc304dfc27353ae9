// Package schedule queues a future re-run of the current invocation
// through the at job queue.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/errors"
	"github.com/hosnas/letsencrypt-vesta/internal/executor"
)

// Scheduler submits jobs to the at queue.
type Scheduler struct {
	exec executor.CommandExecutor
}

// New creates a Scheduler.
func New() *Scheduler {
	return &Scheduler{exec: executor.NewSystemExecutor()}
}

// NewWithExecutor creates a Scheduler with a custom executor (for testing).
func NewWithExecutor(exec executor.CommandExecutor) *Scheduler {
	return &Scheduler{exec: exec}
}

// IsInstalled checks if at is available.
func (s *Scheduler) IsInstalled() bool {
	_, err := s.exec.LookPath("at")
	return err == nil
}

// Schedule queues the given command line to run again after the given
// number of days. Called only after installation finished, so failure here
// never rolls anything back.
func (s *Scheduler) Schedule(days int, command []string) error {
	if !s.IsInstalled() {
		return errors.ErrSchedulerUnavailable
	}

	line := joinCommand(command)
	output, err := s.exec.ExecuteInput(line+"\n", "at", "now", "+", strconv.Itoa(days), "days")
	if err != nil {
		return errors.Wrap(errors.ErrCodeScheduler,
			fmt.Sprintf("at submission failed: %s", strings.TrimSpace(string(output))), err)
	}
	return nil
}

// joinCommand renders a command line for the at job, quoting any argument
// the shell would otherwise split.
func joinCommand(command []string) string {
	quoted := make([]string, len(command))
	for i, arg := range command {
		if arg == "" || strings.ContainsAny(arg, " \t'\"\\$&|;<>()*?[]#~") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
