// Package errclass classifies failed remote calls into log severities and
// best-effort external error reports. Classification never propagates an
// error: the worst outcome is a logged diagnostic plus a stop request when
// the credentials are rejected.
package errclass

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fleetmirror/fleetmirror/internal/httpclient"
)

// SeverityInfo is the severity used for deduplicated unknown-error reports.
const SeverityInfo = "info"

// Reporter is an optional external error-reporting plugin.
type Reporter interface {
	// ReportMessage submits a message with the given severity and tags.
	ReportMessage(ctx context.Context, text, severity string, tags map[string]string) error
}

// DedupStore persists the last externally reported message so that repeats
// of the same unknown error do not flood the reporting system on every poll.
type DedupStore interface {
	// LastReported returns the most recently reported message, or "" if none.
	LastReported(ctx context.Context) (string, error)

	// SetLastReported persists msg as the most recently reported message.
	SetLastReported(ctx context.Context, msg string) error
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithReporter attaches an external error-reporting plugin.
func WithReporter(r Reporter) Option {
	return func(c *Classifier) {
		c.reporter = r
	}
}

// WithDedupStore attaches the persisted last-reported-message state.
func WithDedupStore(d DedupStore) Option {
	return func(c *Classifier) {
		c.dedup = d
	}
}

// Classifier maps transport and HTTP-status failures to log severities and
// optional external reports via a fixed, ordered decision table.
type Classifier struct {
	log         *zap.Logger
	requestStop func()
	reporter    Reporter
	dedup       DedupStore
}

// NewClassifier creates a classifier. requestStop is invoked exactly once
// per rejected-credentials failure; continued polling cannot succeed then.
func NewClassifier(log *zap.Logger, requestStop func(), opts ...Option) *Classifier {
	c := &Classifier{
		log:         log,
		requestStop: requestStop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify inspects a failed remote call and logs a severity-tagged
// diagnostic. operation is a short description of what was being attempted.
// The returned flag reports whether the failure matched a known shape; it is
// informational only and carries no control-flow meaning.
func (c *Classifier) Classify(ctx context.Context, err error, operation string) bool {
	var httpErr *httpclient.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized:
		c.log.Error("authentication credentials are invalid, cannot continue")
		c.log.Error(fmt.Sprintf("HTTP 401 calling %s", operation))
		c.log.Error("shutting down adapter")
		c.requestStop()
		return true

	case errors.As(err, &httpErr):
		c.log.Error(fmt.Sprintf("HTTP %d when polling %s", httpErr.StatusCode, operation))
		return true

	case isTimeout(err):
		c.log.Warn(fmt.Sprintf("connection timeout calling %s", operation))
		c.log.Warn("verify the access token and poll interval")
		return true

	case isUnreachable(err):
		c.log.Warn(fmt.Sprintf("host or network unreachable calling %s", operation))
		c.log.Warn("verify the network environment")
		return true

	default:
		msg := fmt.Sprintf("unknown error calling %s: %v", operation, err)
		c.log.Error(msg)
		c.log.Error("verify the access token and poll interval")
		c.log.Error("unhandled error shape", zap.String("type", fmt.Sprintf("%T", err)))
		c.maybeReport(ctx, msg)
		return false
	}
}

// maybeReport submits an unknown error to the external reporter unless the
// identical message was already reported. Reporting is best effort: its own
// failures are swallowed.
func (c *Classifier) maybeReport(ctx context.Context, msg string) {
	if c.reporter == nil {
		return
	}

	last := ""
	if c.dedup != nil {
		var err error
		last, err = c.dedup.LastReported(ctx)
		if err != nil {
			c.log.Debug("failed to read last reported error", zap.Error(err))
		}
	}
	if msg == last {
		return
	}

	tags := map[string]string{
		"hour": strconv.Itoa(time.Now().Hour()),
	}
	if err := c.reporter.ReportMessage(ctx, msg, SeverityInfo, tags); err != nil {
		c.log.Debug("external error report failed", zap.Error(err))
		return
	}

	if c.dedup != nil {
		if err := c.dedup.SetLastReported(ctx, msg); err != nil {
			c.log.Debug("failed to persist last reported error", zap.Error(err))
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUnreachable(err error) bool {
	return errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH)
}
