package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/app"
	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func runSubmit(ctx context.Context, rater *app.Rater, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	subject := fs.String("subject", "", "subject id (vehicle, business or campaign slug)")
	code := fs.String("code", "", "scanned code; resolves the subject when --subject is empty")
	stars := fs.Int("stars", 0, "rating 1-5")
	tags := fs.String("tags", "", "comma-separated selected tags")
	comment := fs.String("comment", "", "optional comment")
	surface := fs.String("surface", string(domain.SurfaceFull), "QUICK or FULL")
	var ratings, photos multiFlag
	fs.Var(&ratings, "rate", "per-tag rating tag=N (repeatable)")
	fs.Var(&photos, "photo", "photo URL (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Replay what an earlier session left behind before adding to it.
	if _, err := rater.Start(ctx); err != nil {
		fmt.Printf("warning: queued reviews not replayed: %v\n", err)
	}

	draft := domain.ReviewDraft{
		SubjectID: *subject,
		Stars:     *stars,
		Surface:   domain.Surface(strings.ToUpper(*surface)),
		PhotoURLs: photos,
	}
	if *tags != "" {
		draft.SelectedTags = strings.Split(*tags, ",")
	}
	if *comment != "" {
		draft.Comment = comment
	}
	if len(ratings) > 0 {
		draft.TagRatings = make(map[string]int, len(ratings))
		for _, r := range ratings {
			tag, val, ok := strings.Cut(r, "=")
			n, err := strconv.Atoi(val)
			if !ok || err != nil {
				return fmt.Errorf("invalid --rate %q, want tag=N", r)
			}
			draft.TagRatings[tag] = n
		}
	}

	if *code != "" {
		target, err := rater.API.ResolveCode(ctx, *code)
		switch {
		case err == nil:
			if draft.SubjectID == "" {
				draft.SubjectID = target.Subject.ID
			}
			if id, err := uuid.Parse(target.Code.ID); err == nil {
				draft.CodeID = &id
			}
		case draft.SubjectID != "" && errors.Is(err, domain.ErrConnectivity):
			// The subject is known, so the review can still be queued; only
			// the scan count for this code is lost.
			fmt.Printf("warning: code %q not resolved, submitting without it\n", *code)
		default:
			return fmt.Errorf("resolve code %q: %w", *code, err)
		}
	}

	sub, err := rater.Submitter.Submit(ctx, draft)
	if err != nil {
		return err
	}

	switch sub.Status {
	case domain.StatusQueued:
		fmt.Printf("offline: review %s saved and will be sent later\n", sub.SubmissionID)
	case domain.StatusReplayed:
		fmt.Printf("review %s was already recorded\n", sub.SubmissionID)
	default:
		fmt.Printf("review %s accepted, +%d points\n", sub.SubmissionID, sub.PointsAwarded)
		// A successful send means the API is back; flush anything still queued.
		if res, err := rater.Syncer.Run(ctx); err == nil && res.Acked() > 0 {
			fmt.Printf("sent %d queued review(s)\n", res.Acked())
		}
	}
	return nil
}

func runSync(ctx context.Context, rater *app.Rater) error {
	res, err := rater.Syncer.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("pending=%d accepted=%d replayed=%d rejected=%d kept=%d\n",
		res.Pending, res.Accepted, res.Replayed, res.Rejected, res.Kept)
	return nil
}

func runQueue(ctx context.Context, rater *app.Rater, args []string) error {
	fs := flag.NewFlagSet("queue", flag.ContinueOnError)
	clearAll := fs.Bool("clear", false, "discard every queued review")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *clearAll {
		if err := rater.Queue.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("queue cleared")
		return nil
	}

	items, err := rater.Queue.Drain(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("queue is empty")
		return nil
	}
	for _, p := range items {
		fmt.Printf("%s  %s  %d★  queued %s\n",
			p.SubmissionID, p.SubjectID, p.Stars, p.QueuedAt.Format("2006-01-02 15:04:05Z07:00"))
	}
	return nil
}

func runWhoami(ctx context.Context, rater *app.Rater) error {
	id, err := rater.Identity.Resolve(ctx)
	if err != nil {
		return err
	}
	storage := "durable"
	if !rater.Durable || rater.Identity.Ephemeral() {
		storage = "session-only"
	}
	fmt.Printf("%s (%s, %s)\n", id, strings.ToLower(string(id.Kind())), storage)
	return nil
}

func runBalance(ctx context.Context, rater *app.Rater) error {
	id, err := rater.Identity.Resolve(ctx)
	if err != nil {
		return err
	}
	bal, err := rater.API.Balance(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("available=%d lifetime=%d\n", bal.AvailablePoints, bal.LifetimePoints)
	return nil
}

func runQuota(ctx context.Context, rater *app.Rater) error {
	id, err := rater.Identity.Resolve(ctx)
	if err != nil {
		return err
	}
	q, err := rater.API.Quota(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("used %d of %d reviews today, %d remaining\n", q.Count, q.Limit, q.Remaining)
	return nil
}

// describe turns an error into the message shown to the rater.
func describe(err error) string {
	var (
		ve  *domain.ValidationError
		de  *domain.DuplicateError
		rle *domain.RateLimitError
	)
	switch {
	case errors.As(err, &de):
		return "you already rated this within the last hour"
	case errors.As(err, &rle):
		if rle.Count >= 0 {
			return fmt.Sprintf("daily review limit reached (%d of %d)", rle.Count, rle.Limit)
		}
		return "daily review limit reached"
	case errors.As(err, &ve):
		parts := make([]string, len(ve.Errors))
		for i, fe := range ve.Errors {
			parts[i] = fe.Field + ": " + fe.Message
		}
		return "invalid review: " + strings.Join(parts, "; ")
	case errors.Is(err, domain.ErrConnectivity):
		return "the review service is unreachable, try again later"
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}
