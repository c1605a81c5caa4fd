package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/voidshard/wallet/pkg/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog"
)

// from https://github.com/elastic/go-elasticsearch/blob/master/_examples/bulk/indexer.go

const (
	esIndex = "wallet"
	esFlush = 2048

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

type ElasticsearchV8 struct {
	addresses []string
	log       zerolog.Logger
}

func NewElasticsearchV8(urls ...string) *ElasticsearchV8 {
	if len(urls) == 0 {
		address := os.Getenv(envEsAddr)
		port := os.Getenv(envEsPort)
		if port == "" {
			port = "9200" // default port
		}
		if address == "" {
			address = "localhost" // default address
		}
		urls = []string{fmt.Sprintf("http://%s:%s", address, port)}
	}

	return &ElasticsearchV8{addresses: urls, log: zerolog.Nop()}
}

// WithLogger sets the logger used to report bulk indexing results.
func (e *ElasticsearchV8) WithLogger(l zerolog.Logger) *ElasticsearchV8 {
	e.log = l
	return e
}

func (e *ElasticsearchV8) Write(entries []*domain.Entry) error {
	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		// Configure the backoff function
		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		// Retry up to 5 attempts
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         esIndex,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    4,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	_, err = es.Indices.Create(esIndex)
	if err != nil {
		e.log.Warn().Err(err).Str("index", esIndex).Msg("attempted to make index")
	}

	for _, entry := range entries {
		data, err := entry.JSON()
		if err != nil {
			return err
		}

		err = bi.Add(
			context.Background(),
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: entry.ID,
				Body:       bytes.NewReader(data),

				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						e.log.Error().Err(err).Str("id", item.DocumentID).Msg("failed to index entry")
					} else {
						e.log.Error().Str("id", item.DocumentID).Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("failed to index entry")
					}
				},
			},
		)

		if err != nil {
			return err
		}
	}

	err = bi.Close(context.Background())
	if err != nil {
		return err
	}

	biStats := bi.Stats()
	if biStats.NumFailed > 0 {
		e.log.Error().Uint64("flushed", biStats.NumFlushed).Uint64("failed", biStats.NumFailed).Msg("indexed entries with errors")
		return fmt.Errorf("failed indexing %d docs", biStats.NumFailed)
	}

	e.log.Info().Uint64("flushed", biStats.NumFlushed).Msg("indexed entries")
	return nil
}
