//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/points"
	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/review"
	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/scanrate-backend/internal/app"
	authpkg "github.com/heartmarshall/scanrate-backend/internal/auth"
	"github.com/heartmarshall/scanrate-backend/internal/config"
	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
	"github.com/heartmarshall/scanrate-backend/pkg/ctxutil"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth:      config.AuthConfig{JWTSecret: jwtSecret, JWTIssuer: jwtIssuer, AccessTokenTTL: 15 * time.Minute},
		Review:    config.ReviewConfig{DailyCap: domain.DefaultDailyReviewCap, MaxBatchItems: 50},
		Points:    config.PointsConfig{DefaultPerRating: domain.DefaultPointsPerRating, MaxSpend: 100000},
		RateLimit: config.RateLimitConfig{Enabled: false},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
	}
}

// setupTestServer serves the full API handler over a migrated test database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	cfg := testConfig()

	ctx := context.Background()
	require.NoError(t, review.New(pool).SetDailyCap(ctx, cfg.Review.DailyCap))
	require.NoError(t, points.New(pool).EnsurePointsPerRating(ctx, cfg.Points.DefaultPerRating))

	handler, stop := app.NewHandler(cfg, pool, logger)
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

// do sends a JSON request and decodes the response body into out (if non-nil).
func (ts *testServer) do(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) adminToken(t *testing.T) string {
	return ts.token(t, uuid.New(), ctxutil.RoleAdmin)
}

// newAnonymous returns a fresh anonymous identity; the database is shared
// across tests, so every test rates under its own identity.
func newAnonymous(t *testing.T) domain.RaterIdentity {
	t.Helper()
	random, err := gonanoid.New()
	require.NoError(t, err)
	return domain.NewAnonymousIdentity(random, time.Now())
}

// registerSubject creates a subject with a unique id and issues one code.
func (ts *testServer) registerSubject(t *testing.T, prefix string) (wire.SubjectResponse, wire.ScanCodeResponse) {
	t.Helper()
	admin := ts.adminToken(t)

	var subject wire.SubjectResponse
	status := ts.do(t, http.MethodPost, "/api/v1/subjects", wire.RegisterSubjectRequest{
		ID:   fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8]),
		Kind: string(domain.SubjectVehicle),
		Name: "Test " + prefix,
	}, admin, &subject)
	require.Equal(t, http.StatusCreated, status)

	var code wire.ScanCodeResponse
	status = ts.do(t, http.MethodPost, "/api/v1/subjects/"+subject.ID+"/codes", nil, admin, &code)
	require.Equal(t, http.StatusCreated, status)

	return subject, code
}

func reviewFor(subjectID string, rater domain.RaterIdentity) wire.ReviewRequest {
	return wire.ReviewRequest{
		SubmissionID:  uuid.NewString(),
		SubjectID:     subjectID,
		RaterIdentity: rater.String(),
		Stars:         5,
		Tags:          []string{"clean"},
		Surface:       string(domain.SurfaceQuick),
	}
}
