// handler_test.go provides shared test infrastructure for handler tests:
// in-memory backends, request builders and envelope decoding.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/middleware"
	"blogconsole/internal/models"
	"blogconsole/internal/session"
)

// testEnvelope mirrors envelope with the data kept raw.
type testEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	if env.StatusCode != rec.Code {
		t.Errorf("envelope statusCode: got %d, want %d", env.StatusCode, rec.Code)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

// jsonRequest builds a request with a JSON body and optional chi URL params
// given as key/value pairs.
func jsonRequest(t *testing.T, method, target string, body any, params ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return withParams(req, params...)
}

func withParams(req *http.Request, params ...string) *http.Request {
	if len(params) == 0 {
		return req
	}
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches a signed-in administrator to the request.
func withSession(req *http.Request, sess *session.Data) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, sess))
}

var adminSession = &session.Data{Subject: "uid-admin", Email: "admin@example.com", Name: "Admin", Role: "ADMIN", Token: "tok"}

func strPtr(s string) *string { return &s }

// --- category tree fakes ---

type fakeFetcher struct {
	items       []categorytree.OrderItem
	err         error
	calls       int
	invalidated int
}

func (f *fakeFetcher) FetchTree(context.Context) (categorytree.Tree, error) {
	f.calls++
	if f.err != nil {
		return categorytree.Tree{}, f.err
	}
	return categorytree.Build(f.items)
}

func (f *fakeFetcher) Invalidate(context.Context) { f.invalidated++ }

type fakeGateway struct {
	err       error
	submitted [][]categorytree.OrderItem
}

func (g *fakeGateway) SubmitOrder(_ context.Context, items []categorytree.OrderItem) (int, error) {
	g.submitted = append(g.submitted, items)
	if g.err != nil {
		return 0, g.err
	}
	return len(items), nil
}

// sampleItems is A(B), C.
func sampleItems() []categorytree.OrderItem {
	return []categorytree.OrderItem{
		{ID: "A", Order: 0},
		{ID: "B", ParentID: strPtr("A"), Order: 0},
		{ID: "C", Order: 1},
	}
}

// --- resource fakes ---

type fakeCategories struct {
	cats    map[string]*models.Category
	created []models.CreateCategoryInput
	updated []models.UpdateCategoryInput
	lastQ   models.Query
	err     error
}

func (f *fakeCategories) ListCategories(_ context.Context, q models.Query) (*models.Page[models.Category], error) {
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	page := &models.Page[models.Category]{Data: []models.Category{}}
	for _, c := range f.cats {
		page.Data = append(page.Data, *c)
	}
	page.Meta = models.NewPageMeta(len(page.Data), 1, models.DefaultLimit)
	return page, nil
}

func (f *fakeCategories) CategoryTree(context.Context) ([]models.Category, error) {
	return nil, f.err
}

func (f *fakeCategories) GetCategory(_ context.Context, id string) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cats[id], nil
}

func (f *fakeCategories) CreateCategory(_ context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &models.Category{ID: "new", NameVI: in.NameVI, NameEN: in.NameEN, ParentID: in.ParentID}, nil
}

func (f *fakeCategories) UpdateCategory(_ context.Context, id string, in models.UpdateCategoryInput) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, in)
	return &models.Category{ID: id}, nil
}

func (f *fakeCategories) DeleteCategory(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.cats[id]; !ok {
		return categorytree.ErrNotFound
	}
	delete(f.cats, id)
	return nil
}

type fakeHistory struct {
	entries []models.ReorderLogEntry
	limit   int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]models.ReorderLogEntry, error) {
	f.limit = limit
	return f.entries, nil
}
