package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RaterIdentity is the stable token a reviewer is tracked by: either an
// authenticated user id (canonical UUID text) or an anonymous device token.
type RaterIdentity string

// IdentityKind distinguishes authenticated from anonymous raters.
type IdentityKind string

const (
	IdentityAuthenticated IdentityKind = "AUTHENTICATED"
	IdentityAnonymous     IdentityKind = "ANONYMOUS"
)

// AnonymousPrefix starts every anonymous device token.
const AnonymousPrefix = "anon_"

// Anonymous tokens look like anon_<21 nanoid chars>_<base36 unix millis>.
var anonymousTokenRe = regexp.MustCompile(`^anon_[A-Za-z0-9_-]{21}_[0-9a-z]{6,12}$`)

func (id RaterIdentity) String() string { return string(id) }

// Kind returns the identity kind. It does not validate the token.
func (id RaterIdentity) Kind() IdentityKind {
	if strings.HasPrefix(string(id), AnonymousPrefix) {
		return IdentityAnonymous
	}
	return IdentityAuthenticated
}

// IsValid reports whether the token is syntactically valid.
func (id RaterIdentity) IsValid() bool {
	_, err := ParseRaterIdentity(string(id))
	return err == nil
}

// ParseRaterIdentity validates s as an authenticated user id or an anonymous
// device token.
func ParseRaterIdentity(s string) (RaterIdentity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError("rater_identity", "required")
	}
	if strings.HasPrefix(s, AnonymousPrefix) {
		if !anonymousTokenRe.MatchString(s) {
			return "", NewValidationError("rater_identity", "malformed anonymous token")
		}
		return RaterIdentity(s), nil
	}
	parsed, err := uuid.Parse(s)
	if err != nil || parsed == uuid.Nil {
		return "", NewValidationError("rater_identity", "must be a user id or anonymous token")
	}
	// Normalise to the canonical lowercase form so the same user never
	// appears under two spellings.
	return RaterIdentity(parsed.String()), nil
}

// UserIdentity returns the identity of an authenticated user.
func UserIdentity(userID uuid.UUID) RaterIdentity {
	return RaterIdentity(userID.String())
}

// NewAnonymousIdentity assembles an anonymous token from a random part and the
// generation time. random must be 21 URL-safe characters.
func NewAnonymousIdentity(random string, at time.Time) RaterIdentity {
	return RaterIdentity(AnonymousPrefix + random + "_" + strconv.FormatInt(at.UnixMilli(), 36))
}

var subjectIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateSubjectID checks the syntax of a subject reference.
// Subject ids are slugs such as "veh-1" or "biz_cafe-42".
func ValidateSubjectID(s string) error {
	if strings.TrimSpace(s) == "" {
		return NewValidationError("subject_id", "required")
	}
	if !subjectIDRe.MatchString(s) {
		return NewValidationError("subject_id", "malformed subject reference")
	}
	return nil
}
