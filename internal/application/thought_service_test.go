package application

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

type memThoughtRepo struct {
	thoughts map[uuid.UUID]*entity.Thought
}

func newMemThoughtRepo() *memThoughtRepo {
	return &memThoughtRepo{thoughts: map[uuid.UUID]*entity.Thought{}}
}

func (r *memThoughtRepo) Create(_ context.Context, t *entity.Thought) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.thoughts[t.ID] = &cp
	return nil
}

func (r *memThoughtRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Thought, error) {
	out := []entity.Thought{}
	for _, t := range r.thoughts {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memThoughtRepo) GetByID(_ context.Context, id, userID uuid.UUID) (*entity.Thought, error) {
	t, ok := r.thoughts[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memThoughtRepo) Update(_ context.Context, t *entity.Thought) error {
	stored, ok := r.thoughts[t.ID]
	if !ok || stored.UserID != t.UserID {
		return repository.ErrNotFound
	}
	cp := *t
	r.thoughts[t.ID] = &cp
	return nil
}

func (r *memThoughtRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	t, ok := r.thoughts[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.thoughts, id)
	return true, nil
}

var _ repository.ThoughtRepository = (*memThoughtRepo)(nil)

func newThoughtService() *ThoughtService {
	// No Elasticsearch in unit tests; indexing is a no-op and search
	// degrades to empty results.
	return NewThoughtService(newMemThoughtRepo(), nil, "", nil)
}

func TestThoughtCreateAndGet(t *testing.T) {
	svc := newThoughtService()
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "ship it")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(context.Background(), created.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "ship it", got.Content)
}

func TestThoughtUpdateReplacesContent(t *testing.T) {
	svc := newThoughtService()
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "draft")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, userID, "final")
	require.NoError(t, err)
	require.Equal(t, "final", updated.Content)
}

func TestThoughtOwnerIsolation(t *testing.T) {
	svc := newThoughtService()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.Create(context.Background(), owner, "private")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, intruder)
	require.ErrorIs(t, err, ErrThoughtNotFound)

	_, err = svc.Update(context.Background(), created.ID, intruder, "defaced")
	require.ErrorIs(t, err, ErrThoughtNotFound)

	err = svc.Delete(context.Background(), created.ID, intruder)
	require.ErrorIs(t, err, ErrThoughtNotFound)

	list, err := svc.List(context.Background(), intruder)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestThoughtDelete(t *testing.T) {
	svc := newThoughtService()
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "temp")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, userID))
	_, err = svc.Get(context.Background(), created.ID, userID)
	require.ErrorIs(t, err, ErrThoughtNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), created.ID, userID), ErrThoughtNotFound)
}

func TestThoughtSearchWithoutES(t *testing.T) {
	svc := newThoughtService()
	out, err := svc.Search(context.Background(), uuid.New(), "anything", 10)
	require.NoError(t, err)
	require.Empty(t, out)
}

// stubESTransport answers every Elasticsearch request with a canned
// response.
type stubESTransport struct {
	status int
	body   string
}

func (tr *stubESTransport) RoundTrip(*http.Request) (*http.Response, error) {
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: tr.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(tr.body)),
	}, nil
}

func newESBackedThoughtService(t *testing.T, status int, body string) *ThoughtService {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: &stubESTransport{status: status, body: body},
	})
	require.NoError(t, err)
	return NewThoughtService(newMemThoughtRepo(), es, "thoughts", nil)
}

func TestThoughtSearchSurfacesESError(t *testing.T) {
	svc := newESBackedThoughtService(t, http.StatusNotFound,
		`{"error":{"type":"index_not_found_exception"},"status":404}`)

	_, err := svc.Search(context.Background(), uuid.New(), "anything", 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "es search")
}

func TestThoughtSearchDecodesHits(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	body := `{"hits":{"hits":[{"_source":{"id":"` + id.String() +
		`","user_id":"` + userID.String() +
		`","content":"ship it","created_at":"2026-08-01T10:00:00Z","updated_at":"2026-08-01T10:00:00Z"}}]}}`
	svc := newESBackedThoughtService(t, http.StatusOK, body)

	out, err := svc.Search(context.Background(), userID, "ship", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, id, out[0].ID)
	require.Equal(t, "ship it", out[0].Content)
}
