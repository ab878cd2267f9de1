// internal/store/tagindex.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/matching/bulk"
	"candidate-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultTagIndex = "semantic-tags"

const tagIndexMapping = `{
  "mappings": {
    "properties": {
      "category":     {"type": "keyword"},
      "value":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "confidence":   {"type": "float"},
      "relatedTerms": {"type": "keyword"},
      "frequency":    {"type": "integer"},
      "examples":     {"type": "text"},
      "runId":        {"type": "keyword"},
      "indexedAt":    {"type": "date"}
    }
  }
}`

var _ bulk.TagIndexer = (*TagIndex)(nil)

// TagIndex writes a bulk run's tag catalog to Elasticsearch. Documents are
// keyed by tag ID, so a later run overwrites earlier frequencies.
type TagIndex struct {
	client *elasticsearch.Client
	index  string
	now    func() time.Time
}

func NewTagIndex(client *elasticsearch.Client, index string) *TagIndex {
	if index == "" {
		index = DefaultTagIndex
	}
	return &TagIndex{client: client, index: index, now: time.Now}
}

type tagDocument struct {
	models.SemanticTag
	RunID     string    `json:"runId"`
	IndexedAt time.Time `json:"indexedAt"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *TagIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperrors.NewIndexingFailedError(x.index, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return apperrors.NewIndexingFailedError(x.index, fmt.Errorf("index exists check: %s", res.Status()))
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(tagIndexMapping)),
	)
	if err != nil {
		return apperrors.NewIndexingFailedError(x.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewIndexingFailedError(x.index, fmt.Errorf("create index: %s", res.Status()))
	}
	return nil
}

func (x *TagIndex) IndexTags(ctx context.Context, runID string, tags []models.SemanticTag) error {
	if len(tags) == 0 {
		return nil
	}

	body, err := x.bulkBody(runID, tags)
	if err != nil {
		return err
	}

	res, err := x.client.Bulk(bytes.NewReader(body),
		x.client.Bulk.WithContext(ctx),
		x.client.Bulk.WithIndex(x.index),
	)
	if err != nil {
		return apperrors.NewIndexingFailedError(x.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return apperrors.NewIndexingFailedError(x.index, fmt.Errorf("bulk request: %s: %s", res.Status(), msg))
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return apperrors.NewIndexingFailedError(x.index, fmt.Errorf("decode bulk response: %w", err))
	}
	if parsed.Errors {
		failed := 0
		first := ""
		for _, item := range parsed.Items {
			for _, op := range item {
				if op.Error == nil {
					continue
				}
				failed++
				if first == "" {
					first = fmt.Sprintf("%s: %s", op.ID, op.Error.Reason)
				}
			}
		}
		return apperrors.NewIndexingFailedError(x.index, fmt.Errorf("%d of %d tags rejected, first: %s", failed, len(tags), first))
	}
	return nil
}

func (x *TagIndex) bulkBody(runID string, tags []models.SemanticTag) ([]byte, error) {
	var buf bytes.Buffer
	indexedAt := x.now().UTC()

	for _, t := range tags {
		meta, err := json.Marshal(map[string]map[string]string{"index": {"_id": t.ID}})
		if err != nil {
			return nil, err
		}
		doc, err := json.Marshal(tagDocument{SemanticTag: t, RunID: runID, IndexedAt: indexedAt})
		if err != nil {
			return nil, fmt.Errorf("encode tag %s: %w", t.ID, err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
