// Package processor evaluates a single watch request against the live
// schedule page: fetch, extract, and on a match build and send the
// notification.
package processor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/discord"
	"github.com/cinewatch/pathe-monitor/internal/extract"
	"github.com/cinewatch/pathe-monitor/internal/metrics"
	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

// Outcome is the terminal result of evaluating one watch request in one
// tick. Nothing about it is remembered for the next tick.
type Outcome int

// The four terminal outcomes.
const (
	OutcomeMatched Outcome = iota
	OutcomeNotMatched
	OutcomeFetchFailed
	OutcomeParseFailed
)

// String names the outcome for logs and metric labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNotMatched:
		return "not_matched"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeParseFailed:
		return "parse_failed"
	default:
		return "unknown"
	}
}

// Notifier delivers a built notification to the webhook.
type Notifier interface {
	Send(ctx context.Context, n discord.Notification) error
}

// Processor runs the fetch→extract→notify pipeline for one request.
type Processor struct {
	fetcher  monitor.Fetcher
	notifier Notifier
	logger   *zap.Logger
}

// New constructs a Processor.
func New(fetcher monitor.Fetcher, notifier Notifier, logger *zap.Logger) *Processor {
	return &Processor{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
	}
}

// Process evaluates one watch request. Every failure is reduced to an
// Outcome here; nothing propagates to the caller as an error.
func (p *Processor) Process(ctx context.Context, req monitor.WatchRequest) Outcome {
	log := p.logger.With(zap.String("request", req.String()))
	log.Info("processing watch request")

	url := req.ScheduleURL()
	start := time.Now()
	body, err := p.fetcher.Fetch(ctx, url)
	metrics.ObserveFetch(time.Since(start))
	if err != nil {
		log.Error("schedule fetch failed", zap.String("url", url), zap.Error(err))
		return p.observe(OutcomeFetchFailed)
	}

	listing, found, err := extract.Listing(body, req.Movie)
	if err != nil {
		var serr *extract.StructuralError
		if errors.As(err, &serr) {
			log.Error("schedule page changed shape", zap.String("missing", serr.Missing))
		} else {
			log.Error("schedule parse failed", zap.Error(err))
		}
		return p.observe(OutcomeParseFailed)
	}
	if !found {
		log.Info("no tickets available")
		return p.observe(OutcomeNotMatched)
	}

	log.Info("tickets available", zap.Int("showtimes", len(listing.Showtimes)))
	p.notify(ctx, log, req, listing)
	return p.observe(OutcomeMatched)
}

// notify builds and sends the notification. A delivery failure is logged
// and dropped; it never changes the request's outcome and never unwinds
// into the scheduler.
func (p *Processor) notify(ctx context.Context, log *zap.Logger, req monitor.WatchRequest, listing monitor.Listing) {
	n := discord.Build(req, listing)
	if err := p.notifier.Send(ctx, n); err != nil {
		log.Error("webhook delivery failed", zap.Error(err))
		metrics.ObserveNotification("failed")
		return
	}
	log.Info("notification sent")
	metrics.ObserveNotification("sent")
}

func (p *Processor) observe(o Outcome) Outcome {
	metrics.ObserveRequest(o.String())
	return o
}
