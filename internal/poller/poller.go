// Package poller performs one poll cycle against the vehicle-telemetry
// aggregation service: a single GET, selective field promotion into the host
// store, and classification of remote failures. Cycles are triggered
// one-at-a-time by the run loop; there is no internal concurrency.
package poller

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/fleetmirror/fleetmirror/internal/errclass"
	"github.com/fleetmirror/fleetmirror/internal/httpclient"
	"github.com/fleetmirror/fleetmirror/internal/statesync"
	"github.com/fleetmirror/fleetmirror/internal/telemetry"
)

// Poll result labels recorded on the polls_total metric.
const (
	ResultSuccess     = "success"
	ResultRemoteError = "remote_error"
	ResultStoreError  = "store_error"
)

// Config holds the remote-endpoint settings for a poller.
type Config struct {
	// Endpoint is the base URL of the telemetry aggregation service.
	Endpoint string

	// Token authenticates the GET via a URL query parameter.
	Token string

	// VIN identifies the vehicle to poll.
	VIN string
}

// Status is a snapshot of the most recent poll cycle, served by the ops API.
type Status struct {
	LastPoll            time.Time `json:"last_poll"`
	LastSuccess         time.Time `json:"last_success,omitzero"`
	OK                  bool      `json:"ok"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
}

// Poller mirrors selected telemetry fields into the host store.
type Poller struct {
	client     httpclient.Client
	syncer     *statesync.Helper
	classifier *errclass.Classifier
	metrics    *telemetry.PollerMetrics
	log        *zap.Logger
	cfg        Config

	mu     sync.RWMutex
	status Status
}

// New creates a poller. metrics may be nil (no-op).
func New(
	client httpclient.Client,
	syncer *statesync.Helper,
	classifier *errclass.Classifier,
	metrics *telemetry.PollerMetrics,
	log *zap.Logger,
	cfg Config,
) *Poller {
	return &Poller{
		client:     client,
		syncer:     syncer,
		classifier: classifier,
		metrics:    metrics,
		log:        log,
		cfg:        cfg,
	}
}

// Poll performs one cycle. Remote failures are absorbed and classified;
// host-store write failures propagate so the run loop can decide how to
// handle a malfunctioning store.
func (p *Poller) Poll(ctx context.Context) error {
	operation := "vehicle state"

	body, err := p.client.Get(ctx, p.stateURL())
	if err != nil {
		p.classifier.Classify(ctx, err, operation)
		p.recordFailure(err)
		p.metrics.RecordPoll(ctx, ResultRemoteError)
		return nil
	}

	if !gjson.ValidBytes(body) {
		err := fmt.Errorf("malformed JSON document (%d bytes)", len(body))
		p.classifier.Classify(ctx, err, operation)
		p.recordFailure(err)
		p.metrics.RecordPoll(ctx, ResultRemoteError)
		return nil
	}

	writes, err := p.mirror(ctx, body)
	if err != nil {
		p.recordFailure(err)
		p.metrics.RecordPoll(ctx, ResultStoreError)
		return err
	}

	p.recordSuccess()
	p.metrics.RecordPoll(ctx, ResultSuccess)
	p.metrics.RecordStateWrites(ctx, writes)
	p.log.Debug("poll cycle complete", zap.Int64("writes", writes))
	return nil
}

// Status returns a copy of the last poll snapshot.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// mirror promotes each configured field into the host store. Fields missing
// from the document pass nil (or blank) values into the sync helper, whose
// presence guard skips them without touching the store.
func (p *Poller) mirror(ctx context.Context, body []byte) (int64, error) {
	var writes int64
	for _, f := range vehicleFields {
		result := gjson.GetBytes(body, f.key)

		switch f.kind {
		case kindString:
			value := ""
			if result.Exists() {
				value = result.String()
			}
			if err := p.syncer.SyncString(ctx, f.path, value, statesync.Options{Description: f.desc}); err != nil {
				return writes, err
			}
			if strings.TrimSpace(value) != "" {
				writes++
			}

		case kindNumber:
			var value *float64
			if result.Exists() {
				num := result.Float()
				value = &num
			}
			opts := statesync.NumberOptions{
				Options: statesync.Options{Description: f.desc},
				Unit:    f.unit,
				Min:     f.min,
				Max:     f.max,
			}
			if err := p.syncer.SyncNumber(ctx, f.path, value, opts); err != nil {
				return writes, err
			}
			if value != nil {
				writes++
			}

		case kindBool:
			var value *bool
			if result.Exists() && result.Type != gjson.Null {
				b := result.Bool()
				value = &b
			}
			if err := p.syncer.SyncBool(ctx, f.path, value, statesync.Options{Description: f.desc}); err != nil {
				return writes, err
			}
			if value != nil {
				writes++
			}
		}
	}
	return writes, nil
}

// stateURL builds the telemetry GET URL with the token as a query parameter.
func (p *Poller) stateURL() string {
	base := strings.TrimRight(p.cfg.Endpoint, "/")
	return fmt.Sprintf("%s/%s/state?access_token=%s", base, url.PathEscape(p.cfg.VIN), url.QueryEscape(p.cfg.Token))
}

func (p *Poller) recordFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.LastPoll = time.Now().UTC()
	p.status.OK = false
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
}

func (p *Poller) recordSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now().UTC()
	p.status.LastPoll = now
	p.status.LastSuccess = now
	p.status.OK = true
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
}
