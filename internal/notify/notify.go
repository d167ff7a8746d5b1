// Package notify carries transient user-facing notices, the terminal
// equivalent of the booking app's toasts.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier surfaces one-line notices to the user. Errors shown here are
// feedback only; callers still receive the underlying error.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Terminal writes notices to a terminal stream.
type Terminal struct {
	out io.Writer
}

var _ Notifier = (*Terminal)(nil)

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Success(msg string) {
	fmt.Fprintf(t.out, "✔ %s\n", msg)
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintf(t.out, "✘ %s\n", msg)
}

func (t *Terminal) Info(msg string) {
	fmt.Fprintf(t.out, "ℹ %s\n", msg)
}

// Recorder captures notices for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
	Infos     []string
}

var _ Notifier = (*Recorder)(nil)

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

// LastError returns the most recent error notice, or "".
func (r *Recorder) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[len(r.Errors)-1]
}
