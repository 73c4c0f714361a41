package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv bundles the pieces most handler tests need.
type testEnv struct {
	db   *gorm.DB
	auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	return &testEnv{
		db:   db,
		auth: service.NewAuthService(db, "test-secret", "let-me-in"),
	}
}

// newUserToken registers an account and returns its bearer token.
func (e *testEnv) newUserToken(t *testing.T, email, invite string) string {
	t.Helper()
	_, err := e.auth.Register(email, "password123", invite)
	require.NoError(t, err)
	token, _, err := e.auth.Login(email, "password123")
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// erroringUpstream fails every call.
type erroringUpstream struct{}

func (e *erroringUpstream) Search(ctx context.Context, p types.SearchParams) ([]types.Recipe, error) {
	return nil, context.DeadlineExceeded
}

func (e *erroringUpstream) Trending(ctx context.Context, number int, diet, cuisine string) ([]types.Recipe, error) {
	return nil, context.DeadlineExceeded
}

func (e *erroringUpstream) Details(ctx context.Context, id int64) (*types.Recipe, error) {
	return nil, context.DeadlineExceeded
}

func (e *erroringUpstream) Similar(ctx context.Context, id int64, number int) ([]types.Recipe, error) {
	return nil, context.DeadlineExceeded
}

func (e *erroringUpstream) PriceBreakdown(ctx context.Context, id int64) (json.RawMessage, error) {
	return nil, context.DeadlineExceeded
}

// staticUpstream serves fixed results for every search.
type staticUpstream struct {
	results []types.Recipe
	price   json.RawMessage
}

func (s *staticUpstream) Search(ctx context.Context, p types.SearchParams) ([]types.Recipe, error) {
	return s.results, nil
}

func (s *staticUpstream) Trending(ctx context.Context, number int, diet, cuisine string) ([]types.Recipe, error) {
	return s.results, nil
}

func (s *staticUpstream) Details(ctx context.Context, id int64) (*types.Recipe, error) {
	for i := range s.results {
		if s.results[i].ID == id {
			return &s.results[i], nil
		}
	}
	return nil, context.DeadlineExceeded
}

func (s *staticUpstream) Similar(ctx context.Context, id int64, number int) ([]types.Recipe, error) {
	return s.results, nil
}

func (s *staticUpstream) PriceBreakdown(ctx context.Context, id int64) (json.RawMessage, error) {
	if s.price == nil {
		return nil, context.DeadlineExceeded
	}
	return s.price, nil
}

// recordingUpstream records the queries it is searched with.
type recordingUpstream struct {
	mu      sync.Mutex
	queries []string
}

func (r *recordingUpstream) Search(ctx context.Context, p types.SearchParams) ([]types.Recipe, error) {
	r.mu.Lock()
	r.queries = append(r.queries, p.Query)
	r.mu.Unlock()
	return []types.Recipe{{ID: 1, Title: "Hit"}}, nil
}

func (r *recordingUpstream) Trending(ctx context.Context, number int, diet, cuisine string) ([]types.Recipe, error) {
	return nil, nil
}

func (r *recordingUpstream) Details(ctx context.Context, id int64) (*types.Recipe, error) {
	return &types.Recipe{ID: id}, nil
}

func (r *recordingUpstream) Similar(ctx context.Context, id int64, number int) ([]types.Recipe, error) {
	return nil, nil
}

func (r *recordingUpstream) PriceBreakdown(ctx context.Context, id int64) (json.RawMessage, error) {
	return nil, nil
}
