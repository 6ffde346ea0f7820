package fetcher

import (
	"context"
	"errors"
	"fmt"
)

var errNoCandidates = errors.New("no candidate urls")

// FetchError reports that no candidate yielded a usable feed document.
type FetchError struct {
	Attempts  int
	Candidate string // last candidate tried
	Err       error  // last diagnostic
}

func (e *FetchError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf("fetch failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch failed after %d attempts, last %s: %v", e.Attempts, e.Candidate, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TryInOrder calls attempt for each candidate in order and returns the first success.
// It stops early when ctx is done. On failure the error is a *FetchError carrying the
// last diagnostic.
func TryInOrder[T any](ctx context.Context, candidates []string, attempt func(ctx context.Context, candidate string) (T, error)) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, &FetchError{Err: errNoCandidates}
	}

	fe := &FetchError{}
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			if fe.Err == nil {
				fe.Err = err
			} else {
				fe.Err = fmt.Errorf("%w (stopped: %v)", fe.Err, err)
			}
			return zero, fe
		}

		fe.Attempts++
		fe.Candidate = candidate
		result, err := attempt(ctx, candidate)
		if err == nil {
			return result, nil
		}
		fe.Err = err
	}
	return zero, fe
}
