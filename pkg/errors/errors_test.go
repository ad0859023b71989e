// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/waylandify/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "executable_not_found",
			code:    errors.ErrExecutableNotFound,
			message: "no executable for vscode",
			wantStr: "[EXECUTABLE_NOT_FOUND] no executable for vscode",
		},
		{
			name:    "malformed_entry",
			code:    errors.ErrMalformedEntry,
			message: "key outside of section",
			wantStr: "[MALFORMED_ENTRY] key outside of section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMalformedEntry, "line %d: duplicate section %q", 4, "Desktop Entry")
	want := `line 4: duplicate section "Desktop Entry"`
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "cannot write launcher")

		if err.Code != errors.ErrFileWrite {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrFileWrite)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[FILE_WRITE] cannot write launcher: permission denied"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}

		if !stderrors.Is(err, baseErr) {
			t.Error("errors.Is should reach the wrapped error")
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("apply: %w", errors.New(errors.ErrBackup, "copy failed"))

	if !stderrors.Is(err, errors.New(errors.ErrBackup, "")) {
		t.Error("errors.Is should match on code through fmt wrapping")
	}
	if stderrors.Is(err, errors.New(errors.ErrFileWrite, "")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestCodeHelpers(t *testing.T) {
	err := errors.New(errors.ErrNoMatch, "no launcher").WithDetail("program", "brave")
	wrapped := fmt.Errorf("outer: %w", err)

	if !errors.IsErrorCode(wrapped, errors.ErrNoMatch) {
		t.Error("IsErrorCode should find the code through wrapping")
	}
	if got := errors.GetErrorCode(wrapped); got != errors.ErrNoMatch {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrNoMatch)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorDetails(wrapped)["program"]; got != "brave" {
		t.Errorf("GetErrorDetails()[program] = %v, want brave", got)
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails(plain) should be nil")
	}
}
