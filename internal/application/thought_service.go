package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

var ErrThoughtNotFound = errors.New("thought not found")

// ThoughtService handles CRUD over thoughts and mirrors them into
// Elasticsearch for search. Indexing is best-effort; Postgres stays the
// source of truth.
type ThoughtService struct {
	Thoughts repository.ThoughtRepository
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewThoughtService(thoughts repository.ThoughtRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ThoughtService {
	return &ThoughtService{Thoughts: thoughts, ES: es, ESIndex: esIndex, Logger: logger}
}

func (s *ThoughtService) Create(ctx context.Context, userID uuid.UUID, content string) (*entity.Thought, error) {
	t := &entity.Thought{UserID: userID, Content: content}
	if err := s.Thoughts.Create(ctx, t); err != nil {
		return nil, err
	}
	s.index(ctx, t)
	return t, nil
}

func (s *ThoughtService) List(ctx context.Context, userID uuid.UUID) ([]entity.Thought, error) {
	return s.Thoughts.ListByUser(ctx, userID)
}

func (s *ThoughtService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Thought, error) {
	t, err := s.Thoughts.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrThoughtNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *ThoughtService) Update(ctx context.Context, id, userID uuid.UUID, content string) (*entity.Thought, error) {
	t, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	t.Content = content
	if err := s.Thoughts.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrThoughtNotFound
		}
		return nil, err
	}
	s.index(ctx, t)
	return t, nil
}

func (s *ThoughtService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.Thoughts.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrThoughtNotFound
	}
	s.deindex(ctx, id)
	return nil
}

// Search runs a match query over the owner's indexed thoughts.
func (s *ThoughtService) Search(ctx context.Context, userID uuid.UUID, q string, size int) ([]entity.Thought, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []entity.Thought{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match": map[string]any{"content": q},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID.String()},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID        uuid.UUID `json:"id"`
					UserID    uuid.UUID `json:"user_id"`
					Content   string    `json:"content"`
					CreatedAt time.Time `json:"created_at"`
					UpdatedAt time.Time `json:"updated_at"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Thought, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.Thought{
			ID:        h.Source.ID,
			UserID:    h.Source.UserID,
			Content:   h.Source.Content,
			CreatedAt: h.Source.CreatedAt,
			UpdatedAt: h.Source.UpdatedAt,
		})
	}
	return out, nil
}

func (s *ThoughtService) index(ctx context.Context, t *entity.Thought) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         t.ID,
		"user_id":    t.UserID,
		"content":    t.Content,
		"created_at": t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: t.ID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("thought_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("thought_id", t.ID).Warn("es index response error")
	}
}

func (s *ThoughtService) deindex(ctx context.Context, id uuid.UUID) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id.String()}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("thought_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
