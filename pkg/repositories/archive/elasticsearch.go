package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/fadedpez/youvibe/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the donation archive
type ElasticsearchConfig struct {
	Addresses   []string
	Username    string
	Password    string
	IndexPrefix string
	BatchSize   int // Max donations shipped per archive run
}

// DefaultElasticsearchConfig returns a default configuration
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		Addresses:   []string{"http://localhost:9200"},
		IndexPrefix: "youvibe",
		BatchSize:   100,
	}
}

// donationDoc is the shape indexed into Elasticsearch
type donationDoc struct {
	DonationID       string    `json:"donation_id"`
	SessionID        string    `json:"session_id"`
	FromUserID       string    `json:"from_user_id,omitempty"`
	ToUserID         string    `json:"to_user_id"`
	GrossCoins       int64     `json:"gross_coins"`
	PlatformFeeCoins int64     `json:"platform_fee_coins"`
	NetCoins         int64     `json:"net_coins"`
	Source           string    `json:"source"`
	Timestamp        time.Time `json:"timestamp"`
}

// ElasticsearchArchive ships immutable donation records into dated
// Elasticsearch indices for offline analytics. It sits entirely outside
// the donation path; an unreachable cluster only delays archiving.
type ElasticsearchArchive struct {
	client      *elasticsearch.Client
	indexPrefix string
	batchSize   int
}

// NewElasticsearchArchive creates a new donation archive
func NewElasticsearchArchive(config *ElasticsearchConfig) (*ElasticsearchArchive, error) {
	if config == nil {
		config = DefaultElasticsearchConfig()
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "youvibe"
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	return &ElasticsearchArchive{
		client:      client,
		indexPrefix: config.IndexPrefix,
		batchSize:   config.BatchSize,
	}, nil
}

// BatchSize returns the maximum number of donations shipped per run
func (a *ElasticsearchArchive) BatchSize() int {
	return a.batchSize
}

// currentIndex returns the dated index donations are written to
func (a *ElasticsearchArchive) currentIndex() string {
	return fmt.Sprintf("%s_donations_%s", a.indexPrefix, time.Now().Format("2006_01"))
}

// ArchiveDonations indexes a batch of donation records. Each record is
// indexed under its donation id, so re-shipping after a partial failure
// is idempotent.
func (a *ElasticsearchArchive) ArchiveDonations(ctx context.Context, donations []*entities.Donation) error {
	index := a.currentIndex()

	for _, donation := range donations {
		doc := donationDoc{
			DonationID:       donation.ID,
			SessionID:        donation.SessionID,
			FromUserID:       donation.FromUserID,
			ToUserID:         donation.ToUserID,
			GrossCoins:       donation.GrossCoins,
			PlatformFeeCoins: donation.PlatformFeeCoins,
			NetCoins:         donation.NetCoins,
			Source:           string(donation.Source),
			Timestamp:        donation.Timestamp,
		}

		jsonData, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("error marshaling donation: %w", err)
		}

		res, err := a.client.Index(
			index,
			bytes.NewReader(jsonData),
			a.client.Index.WithContext(ctx),
			a.client.Index.WithDocumentID(donation.ID),
		)
		if err != nil {
			return fmt.Errorf("error indexing donation: %w", err)
		}
		res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error indexing donation %s: %s", donation.ID, res.String())
		}
	}

	return nil
}
