package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
)

// ESIndex indexes one record type into a single Elasticsearch index and
// serves owner-scoped full-text queries over it. Indexing is best-effort:
// failures are logged, never surfaced to the request.
type ESIndex struct {
	Client *elasticsearch.Client
	Index  string
	Fields []string // fields queried by Search, e.g. ["title^2", "description"]
	Logger *logrus.Logger
}

func NewESIndex(client *elasticsearch.Client, index string, fields []string, logger *logrus.Logger) *ESIndex {
	return &ESIndex{Client: client, Index: index, Fields: fields, Logger: logger}
}

func (s *ESIndex) enabled() bool {
	return s != nil && s.Client != nil && s.Index != ""
}

func (s *ESIndex) Store(ctx context.Context, id string, doc any) error {
	if !s.enabled() {
		return nil
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.Index, DocumentID: id, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.Client)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("index", s.Index).WithField("id", id).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("id", id).Warn("es index response error")
	}
	return nil
}

func (s *ESIndex) Remove(ctx context.Context, id string) error {
	if !s.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.Client)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("index", s.Index).WithField("id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// Search runs a multi_match over the configured fields, filtered to the
// owner so results never leak across accounts.
func (s *ESIndex) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if !s.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": s.Fields,
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"userId": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.Client.Search(
		s.Client.Search.WithContext(c),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
