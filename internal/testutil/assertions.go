package testutil

import (
	"errors"
	"testing"

	apperrors "assetvault/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorFlag checks an asset store's non-fatal error flag. An empty
// wantCode asserts that no flag is set.
func AssertErrorFlag(t *testing.T, flag error, wantCode string) {
	t.Helper()

	if wantCode == "" {
		if flag != nil {
			t.Errorf("expected no error flag, got %v", flag)
		}
		return
	}
	if got := apperrors.Code(flag); got != wantCode {
		t.Errorf("expected error flag %q, got %q (%v)", wantCode, got, flag)
	}
}
