package errors

import "testing"

func TestSentinelErrorsDistinct(t *testing.T) {
	all := map[string]error{
		"ErrUserExists":         ErrUserExists,
		"ErrInvalidCredentials": ErrInvalidCredentials,
		"ErrUnauthenticated":    ErrUnauthenticated,
		"ErrForbidden":          ErrForbidden,
		"ErrUserNotFound":       ErrUserNotFound,
		"ErrTaskNotFound":       ErrTaskNotFound,
		"ErrCommentNotFound":    ErrCommentNotFound,
	}
	seen := map[string]string{}
	for name, err := range all {
		if err == nil {
			t.Errorf("%s should not be nil", name)
			continue
		}
		if prev, ok := seen[err.Error()]; ok {
			t.Errorf("%s and %s share the same message", name, prev)
		}
		seen[err.Error()] = name
	}
}
