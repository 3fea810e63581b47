package domain

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinStars = 1
	MaxStars = 5

	MaxPhotos    = 5
	MaxTags      = 20
	MaxTagLength = 40
)

// Surface is the client screen a review was captured on. It decides the
// comment length limit.
type Surface string

const (
	SurfaceQuick Surface = "QUICK"
	SurfaceFull  Surface = "FULL"
)

func (s Surface) String() string { return string(s) }

func (s Surface) IsValid() bool {
	switch s {
	case SurfaceQuick, SurfaceFull:
		return true
	}
	return false
}

// MaxCommentLength returns the comment limit in characters for the surface.
func (s Surface) MaxCommentLength() int {
	if s == SurfaceQuick {
		return 180
	}
	return 500
}

// Review is an accepted rating of a subject.
type Review struct {
	ID            uuid.UUID
	SubmissionID  uuid.UUID
	SubjectID     string
	CodeID        *uuid.UUID
	RaterIdentity RaterIdentity
	Stars         int
	Tags          []string
	TagRatings    map[string]int
	Comment       *string
	PhotoURLs     []string
	Surface       Surface
	CapturedAt    *time.Time
	CreatedAt     time.Time
}

// HourBucket returns the duplicate-window bucket the review falls into.
func (r *Review) HourBucket() time.Time {
	return HourBucket(r.CreatedAt)
}

// HourBucket truncates t to the start of its UTC hour.
func HourBucket(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// ReviewDay returns the start of the UTC calendar day containing t.
func ReviewDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReviewDraft is a review as captured on the device, before the server
// assigns an id. SubmissionID is generated on capture and is the replay
// idempotency key.
type ReviewDraft struct {
	SubmissionID  uuid.UUID      `json:"submission_id"`
	SubjectID     string         `json:"subject_id"`
	CodeID        *uuid.UUID     `json:"code_id,omitempty"`
	RaterIdentity RaterIdentity  `json:"rater_identity"`
	Stars         int            `json:"stars"`
	SelectedTags  []string       `json:"tags,omitempty"`
	TagRatings    map[string]int `json:"tag_ratings,omitempty"`
	Comment       *string        `json:"comment,omitempty"`
	PhotoURLs     []string       `json:"photo_urls,omitempty"`
	Surface       Surface        `json:"surface"`
	CapturedAt    time.Time      `json:"captured_at"`
}

// PendingReview is a draft held in the device's offline queue.
type PendingReview struct {
	ReviewDraft
	QueuedAt time.Time `json:"queued_at"`
}

// HasValidReferences reports whether the draft carries syntactically valid
// subject and identity references and an in-range star value. Entries failing
// this check are dropped from the offline queue, never retried.
func (d *ReviewDraft) HasValidReferences() bool {
	if d.SubmissionID == uuid.Nil {
		return false
	}
	if ValidateSubjectID(d.SubjectID) != nil {
		return false
	}
	if !d.RaterIdentity.IsValid() {
		return false
	}
	return d.Stars >= MinStars && d.Stars <= MaxStars
}

// Validate checks every field of the draft and collects all errors.
func (d *ReviewDraft) Validate() error {
	var errs []FieldError

	if d.SubmissionID == uuid.Nil {
		errs = append(errs, FieldError{Field: "submission_id", Message: "required"})
	}
	if err := ValidateSubjectID(d.SubjectID); err != nil {
		errs = append(errs, FieldError{Field: "subject_id", Message: fieldMessage(err)})
	}
	if _, err := ParseRaterIdentity(string(d.RaterIdentity)); err != nil {
		errs = append(errs, FieldError{Field: "rater_identity", Message: fieldMessage(err)})
	}
	if d.Stars < MinStars || d.Stars > MaxStars {
		errs = append(errs, FieldError{Field: "stars", Message: "must be between 1 and 5"})
	}

	surface := d.Surface
	if surface == "" {
		surface = SurfaceFull
	}
	if !surface.IsValid() {
		errs = append(errs, FieldError{Field: "surface", Message: "must be QUICK or FULL"})
	}

	if len(d.SelectedTags) > MaxTags {
		errs = append(errs, FieldError{Field: "tags", Message: "too many tags"})
	}
	for _, tag := range d.SelectedTags {
		if t := strings.TrimSpace(tag); t == "" || utf8.RuneCountInString(t) > MaxTagLength {
			errs = append(errs, FieldError{Field: "tags", Message: "tags must be 1-40 characters"})
			break
		}
	}
	for tag, rating := range d.TagRatings {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, FieldError{Field: "tag_ratings", Message: "tag name required"})
			break
		}
		// Zero means "not rated" and is dropped by ResolveTags.
		if rating < 0 || rating > MaxStars {
			errs = append(errs, FieldError{Field: "tag_ratings", Message: "ratings must be between 1 and 5"})
			break
		}
	}

	if d.Comment != nil {
		if n := utf8.RuneCountInString(strings.TrimSpace(*d.Comment)); n > surface.MaxCommentLength() {
			errs = append(errs, FieldError{Field: "comment", Message: "too long for " + strings.ToLower(string(surface)) + " review"})
		}
	}

	if len(d.PhotoURLs) > MaxPhotos {
		errs = append(errs, FieldError{Field: "photo_urls", Message: "max 5 photos"})
	}
	for _, raw := range d.PhotoURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			errs = append(errs, FieldError{Field: "photo_urls", Message: "must be absolute http(s) URLs"})
			break
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ToReview builds the review to persist from a validated draft.
func (d *ReviewDraft) ToReview(id uuid.UUID, now time.Time) *Review {
	surface := d.Surface
	if surface == "" {
		surface = SurfaceFull
	}

	r := &Review{
		ID:            id,
		SubmissionID:  d.SubmissionID,
		SubjectID:     d.SubjectID,
		CodeID:        d.CodeID,
		RaterIdentity: d.RaterIdentity,
		Stars:         d.Stars,
		Tags:          ResolveTags(d.SelectedTags, d.TagRatings),
		TagRatings:    positiveRatings(d.TagRatings),
		PhotoURLs:     slices.Clone(d.PhotoURLs),
		Surface:       surface,
		CreatedAt:     now.UTC(),
	}
	if d.Comment != nil {
		if c := strings.TrimSpace(*d.Comment); c != "" {
			r.Comment = &c
		}
	}
	if !d.CapturedAt.IsZero() {
		at := d.CapturedAt.UTC()
		r.CapturedAt = &at
	}
	if r.PhotoURLs == nil {
		r.PhotoURLs = []string{}
	}
	return r
}

// ResolveTags is the single merge rule for the two optional tag sources: an
// explicit selection wins; otherwise every tag with a positive rating is
// used. The result is trimmed, de-duplicated and sorted.
func ResolveTags(selected []string, ratings map[string]int) []string {
	var src []string
	if len(selected) > 0 {
		src = selected
	} else {
		for tag, rating := range ratings {
			if rating > 0 {
				src = append(src, tag)
			}
		}
	}

	out := make([]string, 0, len(src))
	for _, tag := range src {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

func positiveRatings(ratings map[string]int) map[string]int {
	out := make(map[string]int, len(ratings))
	for tag, rating := range ratings {
		tag = strings.TrimSpace(tag)
		if tag != "" && rating > 0 {
			out[tag] = rating
		}
	}
	return out
}

func fieldMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.Errors) > 0 {
		return ve.Errors[0].Message
	}
	return err.Error()
}

// SubmissionStatus is the outcome of one submission through the gate.
type SubmissionStatus string

const (
	StatusAccepted SubmissionStatus = "ACCEPTED"
	StatusReplayed SubmissionStatus = "REPLAYED"
	StatusRejected SubmissionStatus = "REJECTED"
	StatusQueued   SubmissionStatus = "QUEUED"
	StatusFailed   SubmissionStatus = "FAILED"
)

// Submission is the result of passing one draft through the gate.
type Submission struct {
	SubmissionID  uuid.UUID
	Status        SubmissionStatus
	Review        *Review
	PointsAwarded int
	Err           error
}
