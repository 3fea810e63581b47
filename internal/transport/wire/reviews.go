// Package wire holds the JSON shapes exchanged between the API server and
// the rater client.
package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// ReviewRequest is one review as posted by a client.
type ReviewRequest struct {
	SubmissionID  string         `json:"submission_id" validate:"required,uuid"`
	SubjectID     string         `json:"subject_id" validate:"required"`
	CodeID        *string        `json:"code_id,omitempty" validate:"omitempty,uuid"`
	RaterIdentity string         `json:"rater_identity,omitempty"`
	Stars         int            `json:"stars" validate:"min=1,max=5"`
	Tags          []string       `json:"tags,omitempty" validate:"max=20"`
	TagRatings    map[string]int `json:"tag_ratings,omitempty"`
	Comment       *string        `json:"comment,omitempty"`
	PhotoURLs     []string       `json:"photo_urls,omitempty" validate:"max=5,dive,url"`
	Surface       string         `json:"surface,omitempty" validate:"omitempty,oneof=QUICK FULL"`
	CapturedAt    *time.Time     `json:"captured_at,omitempty"`
}

// BatchRequest carries the drafts replayed from an offline queue.
type BatchRequest struct {
	Reviews []ReviewRequest `json:"reviews" validate:"required,min=1,dive"`
}

// ToDraft converts a validated request into a draft. Unparseable ids become
// zero values and are rejected by draft validation.
func (r ReviewRequest) ToDraft() domain.ReviewDraft {
	d := domain.ReviewDraft{
		SubjectID:     r.SubjectID,
		RaterIdentity: domain.RaterIdentity(r.RaterIdentity),
		Stars:         r.Stars,
		SelectedTags:  r.Tags,
		TagRatings:    r.TagRatings,
		Comment:       r.Comment,
		PhotoURLs:     r.PhotoURLs,
		Surface:       domain.Surface(r.Surface),
	}
	if id, err := uuid.Parse(r.SubmissionID); err == nil {
		d.SubmissionID = id
	}
	if r.CodeID != nil {
		if id, err := uuid.Parse(*r.CodeID); err == nil {
			d.CodeID = &id
		}
	}
	if r.CapturedAt != nil {
		d.CapturedAt = *r.CapturedAt
	}
	return d
}

// ReviewRequestFromDraft is the client-side inverse of ToDraft.
func ReviewRequestFromDraft(d domain.ReviewDraft) ReviewRequest {
	r := ReviewRequest{
		SubmissionID:  d.SubmissionID.String(),
		SubjectID:     d.SubjectID,
		RaterIdentity: d.RaterIdentity.String(),
		Stars:         d.Stars,
		Tags:          d.SelectedTags,
		TagRatings:    d.TagRatings,
		Comment:       d.Comment,
		PhotoURLs:     d.PhotoURLs,
		Surface:       string(d.Surface),
	}
	if d.CodeID != nil {
		s := d.CodeID.String()
		r.CodeID = &s
	}
	if !d.CapturedAt.IsZero() {
		at := d.CapturedAt
		r.CapturedAt = &at
	}
	return r
}

// ReviewResponse is a stored review.
type ReviewResponse struct {
	ID            string         `json:"id"`
	SubmissionID  string         `json:"submission_id"`
	SubjectID     string         `json:"subject_id"`
	CodeID        *string        `json:"code_id,omitempty"`
	RaterIdentity string         `json:"rater_identity"`
	Stars         int            `json:"stars"`
	Tags          []string       `json:"tags"`
	TagRatings    map[string]int `json:"tag_ratings,omitempty"`
	Comment       *string        `json:"comment,omitempty"`
	PhotoURLs     []string       `json:"photo_urls"`
	Surface       string         `json:"surface"`
	CapturedAt    *time.Time     `json:"captured_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewReviewResponse(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	out := &ReviewResponse{
		ID:            r.ID.String(),
		SubmissionID:  r.SubmissionID.String(),
		SubjectID:     r.SubjectID,
		RaterIdentity: r.RaterIdentity.String(),
		Stars:         r.Stars,
		Tags:          r.Tags,
		TagRatings:    r.TagRatings,
		Comment:       r.Comment,
		PhotoURLs:     r.PhotoURLs,
		Surface:       string(r.Surface),
		CapturedAt:    r.CapturedAt,
		CreatedAt:     r.CreatedAt,
	}
	if r.CodeID != nil {
		s := r.CodeID.String()
		out.CodeID = &s
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.PhotoURLs == nil {
		out.PhotoURLs = []string{}
	}
	return out
}

// SubmissionResponse is the outcome of one review. Error is set for REJECTED
// and FAILED items of a batch.
type SubmissionResponse struct {
	SubmissionID  string          `json:"submission_id"`
	Status        string          `json:"status"`
	Review        *ReviewResponse `json:"review,omitempty"`
	PointsAwarded int             `json:"points_awarded"`
	Error         *ErrorBody      `json:"error,omitempty"`
}

func NewSubmissionResponse(s domain.Submission) SubmissionResponse {
	out := SubmissionResponse{
		SubmissionID:  s.SubmissionID.String(),
		Status:        string(s.Status),
		Review:        NewReviewResponse(s.Review),
		PointsAwarded: s.PointsAwarded,
	}
	if s.Err != nil {
		body := NewErrorBody(s.Err)
		out.Error = &body
	}
	return out
}

// BatchResponse lists one result per request item, in order.
type BatchResponse struct {
	Results []SubmissionResponse `json:"results"`
}

// ReviewPage is a page of a subject's reviews.
type ReviewPage struct {
	Items []*ReviewResponse `json:"items"`
	Total int               `json:"total"`
}

// QuotaResponse reports the caller's use of the daily cap.
type QuotaResponse struct {
	Identity  string    `json:"identity"`
	Day       time.Time `json:"day"`
	Count     int       `json:"count"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
}

// ToReview is the client-side inverse of NewReviewResponse.
func (r *ReviewResponse) ToReview() (*domain.Review, error) {
	if r == nil {
		return nil, nil
	}
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("review id %q: %w", r.ID, err)
	}
	submissionID, err := uuid.Parse(r.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("submission id %q: %w", r.SubmissionID, err)
	}
	out := &domain.Review{
		ID:            id,
		SubmissionID:  submissionID,
		SubjectID:     r.SubjectID,
		RaterIdentity: domain.RaterIdentity(r.RaterIdentity),
		Stars:         r.Stars,
		Tags:          r.Tags,
		TagRatings:    r.TagRatings,
		Comment:       r.Comment,
		PhotoURLs:     r.PhotoURLs,
		Surface:       domain.Surface(r.Surface),
		CapturedAt:    r.CapturedAt,
		CreatedAt:     r.CreatedAt,
	}
	if r.CodeID != nil {
		codeID, err := uuid.Parse(*r.CodeID)
		if err != nil {
			return nil, fmt.Errorf("code id %q: %w", *r.CodeID, err)
		}
		out.CodeID = &codeID
	}
	return out, nil
}

// ToSubmission is the client-side inverse of NewSubmissionResponse.
func (s SubmissionResponse) ToSubmission() (domain.Submission, error) {
	id, err := uuid.Parse(s.SubmissionID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("submission id %q: %w", s.SubmissionID, err)
	}
	review, err := s.Review.ToReview()
	if err != nil {
		return domain.Submission{}, err
	}
	out := domain.Submission{
		SubmissionID:  id,
		Status:        domain.SubmissionStatus(s.Status),
		Review:        review,
		PointsAwarded: s.PointsAwarded,
	}
	if s.Error != nil {
		out.Err = s.Error.Err()
	}
	return out, nil
}
