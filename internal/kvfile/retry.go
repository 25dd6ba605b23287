package kvfile

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

// retryCommit retries fn with Fibonacci backoff up to 4 times after the
// first try (5 attempts in all), the same
// policy as the teacher's Retry helper (_examples/SharedCode-sop/retry.go),
// scoped to Table.Put's own commit I/O. Directory-enumeration errors seen by
// the indexer (spec.md §7 NonFatalIndex) are a different failure class and
// are never retried; only a record write's own transient I/O is.
func retryCommit(fn func() error) error {
	b := retry.NewFibonacci(25 * time.Millisecond)
	return retry.Do(context.Background(), retry.WithMaxRetries(4, b), func(ctx context.Context) error {
		err := fn()
		if err == nil {
			return nil
		}
		if !shouldRetryCommit(err) {
			return err
		}
		return retry.RetryableError(err)
	})
}

// shouldRetryCommit reports whether a Table.Put failure is worth retrying:
// permanent conditions (missing parent, permission, out of space, read-only
// filesystem) are returned immediately instead of burning retry budget.
func shouldRetryCommit(err error) bool {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrExist) {
		return false
	}
	switch {
	case errors.Is(err, syscall.EROFS),
		errors.Is(err, syscall.ENOSPC),
		errors.Is(err, syscall.EDQUOT),
		errors.Is(err, syscall.EACCES),
		errors.Is(err, syscall.EPERM),
		errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.ENAMETOOLONG):
		return false
	}
	return true
}
