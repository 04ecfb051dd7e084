package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

type openSearchSource struct {
	transport opensearchapi.Transport
	index     string
	field     string
}

// OpenSearch reports whether index holds a document whose field matches the
// value exactly (term query). Map the field as keyword for exact matches.
// *opensearch.Client satisfies opensearchapi.Transport.
func OpenSearch(transport opensearchapi.Transport, index, field string) (Source, error) {
	if index == "" || field == "" {
		return nil, ErrInvalidIdentifier
	}
	return &openSearchSource{transport: transport, index: index, field: field}, nil
}

func (s *openSearchSource) Exists(ctx context.Context, value string) (bool, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"term": map[string]any{s.field: value},
		},
	})
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}

	req := opensearchapi.CountRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.transport)
	if err != nil {
		return false, errors.Join(ErrLookupFailed, fmt.Errorf("opensearch index %s: %w", s.index, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return false, errors.Join(ErrLookupFailed, fmt.Errorf("opensearch index %s: status %d: %s", s.index, res.StatusCode, msg))
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return out.Count > 0, nil
}

// OpenSearchConfig configures ConnectOpenSearch.
type OpenSearchConfig struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES,required"`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
}

// ConnectOpenSearch creates a client and verifies the cluster answers.
func ConnectOpenSearch(ctx context.Context, cfg OpenSearchConfig) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Join(ErrOpenSearchNotReady, err)
	}
	if err := OpenSearchHealthcheck(client)(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// OpenSearchHealthcheck returns a probe suitable for readiness endpoints.
func OpenSearchHealthcheck(client *opensearch.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		res, err := client.Info(client.Info.WithContext(ctx))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return errors.Join(ErrHealthcheckFailed, fmt.Errorf("opensearch status %d", res.StatusCode))
		}
		return nil
	}
}
