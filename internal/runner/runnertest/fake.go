// Package runnertest provides a scripted runner.System for tests.
package runnertest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/conn-castle/ptsetup/internal/runner"
)

// Response is the scripted result of one command line.
type Response struct {
	Outcome runner.Outcome
	Err     error
	// Streamed is written to the stdout writer of Stream calls.
	Streamed string
}

// System answers commands from a table keyed by the full command line
// ("pip install -r requirements.txt"). Unknown commands fail with runner.ErrStart.
type System struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []string
}

// New returns an empty scripted System.
func New() *System {
	return &System{responses: make(map[string][]Response)}
}

// On queues a response for the command line. Queued responses are consumed in
// order; the last one repeats.
func (s *System) On(command string, resp Response) *System {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[command] = append(s.responses[command], resp)
	return s
}

// OnOutput queues a response that exits with code after printing stdout.
func (s *System) OnOutput(command string, stdout string, code int) *System {
	return s.On(command, Response{Outcome: runner.Outcome{Stdout: stdout, ExitCode: code}})
}

// Calls returns the command lines seen so far.
func (s *System) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Called reports whether any call started with prefix.
func (s *System) Called(prefix string) bool {
	for _, call := range s.Calls() {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// Output implements runner.System.
func (s *System) Output(ctx context.Context, name string, args ...string) (runner.Outcome, error) {
	resp := s.next(name, args)
	if err := ctx.Err(); err != nil {
		return runner.Outcome{}, err
	}
	return resp.Outcome, resp.Err
}

// Stream implements runner.System.
func (s *System) Stream(ctx context.Context, stdout io.Writer, _ io.Writer, name string, args ...string) (runner.Outcome, error) {
	resp := s.next(name, args)
	if err := ctx.Err(); err != nil {
		return runner.Outcome{}, err
	}
	if resp.Streamed != "" {
		_, _ = io.WriteString(stdout, resp.Streamed)
	}
	return resp.Outcome, resp.Err
}

func (s *System) next(name string, args []string) Response {
	command := strings.Join(append([]string{name}, args...), " ")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, command)
	queue, ok := s.responses[command]
	if !ok || len(queue) == 0 {
		return Response{Err: fmt.Errorf("%w: unscripted command %q", runner.ErrStart, command)}
	}
	resp := queue[0]
	if len(queue) > 1 {
		s.responses[command] = queue[1:]
	}
	return resp
}
