package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesWrappedCode(t *testing.T) {
	cause := errors.New("disk full")
	err := E("PutRoot", Backend, cause)

	if !Is(err, Backend) {
		t.Fatal("expected Is to match the wrapped Backend code")
	}
	if Is(err, NameConflict) {
		t.Fatal("expected Is not to match an unrelated code")
	}
}

func TestIsWalksUnwrapChain(t *testing.T) {
	inner := E("open", Backend, errors.New("boom"))
	outer := fmt.Errorf("NewRoot: %w", inner)

	if !Is(outer, Backend) {
		t.Fatal("expected Is to walk through fmt.Errorf wrapping")
	}
}

func TestIsNilError(t *testing.T) {
	if Is(nil, Backend) {
		t.Fatal("expected Is(nil, ...) to be false")
	}
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := E("NewRoot", NameConflict, nil)
	if err.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}
