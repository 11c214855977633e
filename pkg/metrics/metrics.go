// Package metrics posts per-wallet bridging outcomes to Datadog as gauge
// points. Disabled entirely unless configured, so the trader runs fine
// without any Datadog account.
package metrics

import (
	"context"
	"os"
	"time"

	datadog "github.com/DataDog/datadog-api-client-go/api/v2/datadog"
	"github.com/rs/zerolog/log"
)

const (
	metricSuccess = "bridging.success"
	metricFailure = "bridging.failure"
)

type Client struct {
	enabled   bool
	apiClient *datadog.APIClient
	ctx       context.Context
}

// New builds a metrics client. Keys come from DD_API_KEY / DD_APP_KEY env
// vars; a disabled client swallows all posts.
func New(ctx context.Context, enabled bool) *Client {
	if !enabled {
		return &Client{}
	}

	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {
			Key: os.Getenv("DD_API_KEY"),
		},
		"appKeyAuth": {
			Key: os.Getenv("DD_APP_KEY"),
		},
	})

	configuration := datadog.NewConfiguration()
	return &Client{
		enabled:   true,
		apiClient: datadog.NewAPIClient(configuration),
		ctx:       ctx,
	}
}

// PostWalletResult records one processed wallet. Failures to post are
// logged and otherwise ignored; metrics must never fail a wallet run.
func (c *Client) PostWalletResult(success bool, tags []string) {
	if !c.enabled {
		return
	}
	name := metricFailure
	if success {
		name = metricSuccess
	}

	now := time.Now().Unix()
	point := datadog.MetricPoint{
		Timestamp: datadog.PtrInt64(now),
		Value:     datadog.PtrFloat64(1),
	}
	series := datadog.MetricSeries{
		Metric: name,
		Type:   datadog.METRICINTAKETYPE_GAUGE.Ptr(),
		Points: []datadog.MetricPoint{point},
		Tags:   tags,
	}
	payload := datadog.MetricPayload{
		Series: []datadog.MetricSeries{series},
	}
	_, _, err := c.apiClient.MetricsApi.SubmitMetrics(c.ctx, payload)
	if err != nil {
		log.Warn().Err(err).Msgf("failed to post %s metric to Datadog", name)
		return
	}
	log.Debug().Msgf("posted %s metric to Datadog", name)
}
