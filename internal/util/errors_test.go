package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusFor(t *testing.T) {
	cases := map[ErrorKind]int{
		KindNoCredential:        http.StatusUnauthorized,
		KindInvalidCredential:   http.StatusUnauthorized,
		KindIdentityGone:        http.StatusUnauthorized,
		KindRoleNotPermitted:    http.StatusForbidden,
		KindOwnershipDenied:     http.StatusForbidden,
		KindResourceNotFound:    http.StatusNotFound,
		KindQuizNotEnabled:      http.StatusNotFound,
		KindDuplicateSubmission: http.StatusBadRequest,
		KindValidationFailed:    http.StatusBadRequest,
		KindStoreUnavailable:    http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusFor(kind); got != want {
			t.Fatalf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestAppErrorMatchesByKind(t *testing.T) {
	err := fmt.Errorf("create idea: %w", WrapError(KindDuplicateSubmission, "dup", errors.New("unique")))
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatal("wrapped duplicate should match sentinel")
	}
	if errors.Is(err, ErrOwnershipDenied) {
		t.Fatal("kinds must not cross-match")
	}
	if KindOf(err) != KindDuplicateSubmission {
		t.Fatalf("KindOf = %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindStoreUnavailable {
		t.Fatal("plain errors should classify as StoreUnavailable")
	}
}
