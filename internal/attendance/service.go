package attendance

import (
	"context"
	"fmt"
	"time"

	"faceattend/internal/facematch"
)

// Extractor produces a face embedding from raw image bytes. Implemented by
// the face service client.
type Extractor interface {
	Extract(ctx context.Context, image []byte) ([]float32, error)
}

// Store is the persistence surface the service needs. Implemented by
// Repository.
type Store interface {
	Upsert(ctx context.Context, roll, name string, embedding []float32) error
	GetEmbedding(ctx context.Context, roll string) ([]float32, error)
	GetAttendanceToday(ctx context.Context, roll string) (*Attendance, error)
	MarkAttendance(ctx context.Context, roll, status string) (time.Time, error)
	MarkIfNotPresentToday(ctx context.Context, roll, status string) (Attendance, bool, error)
	SaveAdminEmbedding(ctx context.Context, embedding []float32) error
	LoadAdminEmbedding(ctx context.Context) ([]float32, error)
	ListAll(ctx context.Context) ([]Identity, error)
}

// SubmitResult is the outcome of an attendance submission.
type SubmitResult struct {
	AlreadyPresent bool      `json:"already_present"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// Service coordinates the extractor, matcher and store. Stateless across
// calls.
type Service struct {
	store     Store
	extractor Extractor
}

// NewService creates a service.
func NewService(store Store, extractor Extractor) *Service {
	return &Service{store: store, extractor: extractor}
}

// SubmitAttendance marks attendance for a claimed identity. The name is
// accepted for the audit trail but not verified against the stored name; the
// face is what authenticates.
//
// If the identity was already marked present today the stored record is
// returned as-is, before any extraction work is done. Otherwise the photo's
// embedding is compared against the enrolled one and the decision is recorded
// either way: a failed match writes "absent" rather than leaving no trace.
func (s *Service) SubmitAttendance(ctx context.Context, roll, name string, photo []byte) (SubmitResult, error) {
	if roll == "" || name == "" {
		return SubmitResult{}, fmt.Errorf("%w: roll and name required", ErrMissingInput)
	}
	if len(photo) == 0 {
		return SubmitResult{}, fmt.Errorf("%w: photo required", ErrMissingInput)
	}

	// Extraction is the expensive step; skip it entirely when today's mark
	// already exists.
	if rec, err := s.store.GetAttendanceToday(ctx, roll); err != nil {
		return SubmitResult{}, err
	} else if rec != nil {
		return SubmitResult{AlreadyPresent: true, Status: rec.Status, Timestamp: rec.Timestamp}, nil
	}

	submitted, err := s.extractor.Extract(ctx, photo)
	if err != nil {
		return SubmitResult{}, err
	}

	stored, err := s.store.GetEmbedding(ctx, roll)
	if err != nil {
		return SubmitResult{}, err
	}
	if stored == nil {
		return SubmitResult{}, ErrUserNotFound
	}

	score, err := facematch.Compare(submitted, stored)
	if err != nil {
		return SubmitResult{}, err
	}
	status := StatusAbsent
	if facematch.IsMatch(score) {
		status = StatusPresent
	}

	rec, already, err := s.store.MarkIfNotPresentToday(ctx, roll, status)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{AlreadyPresent: already, Status: rec.Status, Timestamp: rec.Timestamp}, nil
}

// AdminLogin authenticates the administrator by face. A nil error means the
// face matched the enrolled admin credential. The similarity score is never
// exposed to the caller.
func (s *Service) AdminLogin(ctx context.Context, photo []byte) error {
	if len(photo) == 0 {
		return fmt.Errorf("%w: photo required", ErrMissingInput)
	}

	submitted, err := s.extractor.Extract(ctx, photo)
	if err != nil {
		return err
	}

	enrolled, err := s.store.LoadAdminEmbedding(ctx)
	if err != nil {
		return err
	}
	if enrolled == nil {
		return ErrAdminNotEnrolled
	}

	score, err := facematch.Compare(submitted, enrolled)
	if err != nil {
		return err
	}
	if !facematch.IsMatch(score) {
		return ErrNotRecognized
	}
	return nil
}

// EnrollUser creates or fully replaces the identity record for a roll number.
// Re-enrollment overwrites name and embedding; attendance state is untouched.
func (s *Service) EnrollUser(ctx context.Context, roll, name string, photo []byte) error {
	if roll == "" || name == "" {
		return fmt.Errorf("%w: roll and name required", ErrMissingInput)
	}
	if len(photo) == 0 {
		return fmt.Errorf("%w: photo required", ErrMissingInput)
	}
	embedding, err := s.extractor.Extract(ctx, photo)
	if err != nil {
		return err
	}
	return s.store.Upsert(ctx, roll, name, embedding)
}

// EnrollAdmin overwrites the admin face credential.
func (s *Service) EnrollAdmin(ctx context.Context, photo []byte) error {
	if len(photo) == 0 {
		return fmt.Errorf("%w: photo required", ErrMissingInput)
	}
	embedding, err := s.extractor.Extract(ctx, photo)
	if err != nil {
		return err
	}
	return s.store.SaveAdminEmbedding(ctx, embedding)
}

// OverrideAttendance lets an administrator set a user's status by hand,
// bypassing the face check. The day-boundary rule is not consulted: an
// override always rewrites status and last_seen together.
func (s *Service) OverrideAttendance(ctx context.Context, roll, status string) (time.Time, error) {
	if roll == "" {
		return time.Time{}, fmt.Errorf("%w: roll required", ErrMissingInput)
	}
	if status != StatusPresent && status != StatusAbsent {
		return time.Time{}, fmt.Errorf("%w: status must be present or absent", ErrMissingInput)
	}
	return s.store.MarkAttendance(ctx, roll, status)
}

// AdminEnrolled reports whether an admin credential exists. Used by the HTTP
// layer to decide whether the enroll route still accepts unauthenticated
// bootstrap requests.
func (s *Service) AdminEnrolled(ctx context.Context) (bool, error) {
	emb, err := s.store.LoadAdminEmbedding(ctx)
	if err != nil {
		return false, err
	}
	return emb != nil, nil
}

// Dashboard returns the identity snapshot for the admin dashboard.
func (s *Service) Dashboard(ctx context.Context) ([]Identity, error) {
	return s.store.ListAll(ctx)
}
