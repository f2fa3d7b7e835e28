package apicall

import (
	"sync"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recordingNotifier) ShowSuccess(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

// flakyOp fails with a network error for the first n calls and then returns
// value.
type flakyOp struct {
	mu       sync.Mutex
	failures int
	calls    int
	value    int
}

func (f *flakyOp) call() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return 0, &NetworkError{Message: "timeout"}
	}
	return f.value, nil
}
