package attendance

import "errors"

// Core outcome errors. Callers branch on these with errors.Is; none of them
// should escape the HTTP boundary as a generic failure.
var (
	// ErrUserNotFound means no identity record exists for the roll number.
	ErrUserNotFound = errors.New("user not found")

	// ErrAdminNotEnrolled means no admin credential has been enrolled yet.
	ErrAdminNotEnrolled = errors.New("admin face is not enrolled")

	// ErrNotRecognized means the submitted face scored below the match
	// threshold during admin login.
	ErrNotRecognized = errors.New("face not recognized")

	// ErrMissingInput means a required field or file is absent.
	ErrMissingInput = errors.New("missing input")
)
