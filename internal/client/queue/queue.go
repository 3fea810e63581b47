// Package queue is the device's durable buffer of reviews that could not be
// delivered. Entries are kept in insertion order under a single key.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Key is the local store key holding the pending reviews.
const Key = "queue/pending_reviews"

type kvStore interface {
	Get(key string, dest any) error
	Update(key string, fn func(current []byte) ([]byte, error)) error
	Delete(key string) error
}

// Queue is safe for concurrent use: every operation is a single atomic
// read-modify-write of the stored list.
type Queue struct {
	store kvStore
	now   func() time.Time
	log   *slog.Logger
}

func New(store kvStore, log *slog.Logger) *Queue {
	return &Queue{store: store, now: time.Now, log: log.With("component", "queue")}
}

// Enqueue appends draft. A draft whose submission id is already queued is
// ignored. Drafts must carry valid references; anything else could never be
// accepted and is refused here rather than queued.
func (q *Queue) Enqueue(ctx context.Context, draft domain.ReviewDraft) error {
	if !draft.HasValidReferences() {
		return domain.NewValidationError("review", "invalid subject or identity reference")
	}

	added := false
	err := q.mutate(func(items []domain.PendingReview) ([]domain.PendingReview, error) {
		if slices.ContainsFunc(items, func(p domain.PendingReview) bool { return p.SubmissionID == draft.SubmissionID }) {
			return items, nil
		}
		added = true
		return append(items, domain.PendingReview{ReviewDraft: draft, QueuedAt: q.now().UTC()}), nil
	})
	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}

	if added {
		q.log.InfoContext(ctx, "review queued",
			slog.String("submission_id", draft.SubmissionID.String()),
			slog.String("subject_id", draft.SubjectID),
		)
	}
	return nil
}

// Drain returns the queued reviews in insertion order. Entries with invalid
// subject or identity references (or undecodable entries) are removed from
// the store and never returned. Valid entries stay queued until acked.
func (q *Queue) Drain(ctx context.Context) ([]domain.PendingReview, error) {
	var valid []domain.PendingReview
	dropped := 0
	err := q.store.Update(Key, func(current []byte) ([]byte, error) {
		valid, dropped = nil, 0
		raws, ok := decodeRaw(current)
		if !ok {
			dropped = 1
		}
		for _, raw := range raws {
			var p domain.PendingReview
			if err := json.Unmarshal(raw, &p); err != nil || !p.HasValidReferences() {
				dropped++
				continue
			}
			valid = append(valid, p)
		}
		if dropped == 0 {
			return current, nil
		}
		return encode(valid)
	})
	if err != nil {
		return nil, fmt.Errorf("drain: %w", err)
	}

	if dropped > 0 {
		q.log.WarnContext(ctx, "dropped invalid queued reviews", slog.Int("dropped", dropped))
	}
	return valid, nil
}

// Ack removes the entries with the given submission ids. Unknown ids are
// ignored.
func (q *Queue) Ack(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	removed := 0
	err := q.mutate(func(items []domain.PendingReview) ([]domain.PendingReview, error) {
		before := len(items)
		items = slices.DeleteFunc(items, func(p domain.PendingReview) bool {
			return slices.Contains(ids, p.SubmissionID)
		})
		removed = before - len(items)
		return items, nil
	})
	if err != nil {
		return fmt.Errorf("ack: %w", err)
	}
	q.log.DebugContext(ctx, "queued reviews acked", slog.Int("removed", removed))
	return nil
}

// Len returns the number of queued entries, valid or not.
func (q *Queue) Len(_ context.Context) (int, error) {
	var raws []json.RawMessage
	err := q.store.Get(Key, &raws)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("len: %w", err)
	}
	return len(raws), nil
}

// Clear removes every queued entry.
func (q *Queue) Clear(ctx context.Context) error {
	if err := q.store.Delete(Key); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	q.log.InfoContext(ctx, "queue cleared")
	return nil
}

// mutate applies fn to the decoded list. Undecodable entries are preserved
// as-is so that Drain can account for them.
func (q *Queue) mutate(fn func([]domain.PendingReview) ([]domain.PendingReview, error)) error {
	return q.store.Update(Key, func(current []byte) ([]byte, error) {
		raws, _ := decodeRaw(current)

		var items []domain.PendingReview
		var broken []json.RawMessage
		for _, raw := range raws {
			var p domain.PendingReview
			if err := json.Unmarshal(raw, &p); err != nil {
				broken = append(broken, raw)
				continue
			}
			items = append(items, p)
		}

		items, err := fn(items)
		if err != nil {
			return nil, err
		}

		out := make([]json.RawMessage, 0, len(broken)+len(items))
		out = append(out, broken...)
		for _, p := range items {
			raw, err := json.Marshal(p)
			if err != nil {
				return nil, err
			}
			out = append(out, raw)
		}
		if len(out) == 0 {
			return nil, nil
		}
		return json.Marshal(out)
	})
}

// decodeRaw splits the stored array into entries. ok is false when a value is
// present but is not an array; it is then treated as an empty queue.
func decodeRaw(current []byte) (raws []json.RawMessage, ok bool) {
	if current == nil {
		return nil, true
	}
	if err := json.Unmarshal(current, &raws); err != nil {
		return nil, false
	}
	return raws, true
}

func encode(items []domain.PendingReview) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}
