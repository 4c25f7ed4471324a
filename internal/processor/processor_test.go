package processor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/discord"
	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

type fakeFetcher struct {
	body []byte
	err  error

	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	return f.body, f.err
}

type fakeNotifier struct {
	err  error
	sent []discord.Notification
}

func (n *fakeNotifier) Send(_ context.Context, notification discord.Notification) error {
	n.sent = append(n.sent, notification)
	return n.err
}

func dunePage() []byte {
	return []byte(`<div class="schedule">
		<div class="schedule-simple__item">
			<div class="schedule-simple__poster"><img src="https://cdn.pathe.nl/dune.jpg"/></div>
			<h4><a href="/film/dune">Dune</a></h4>
			<a class="schedule-time" data-href="/tickets/1">
				<span class="schedule-time__start">10:00</span>
				<span class="schedule-time__end">12:30</span>
				<span class="schedule-time__label">2D</span>
			</a>
			<a class="schedule-time" data-href="/tickets/2">
				<span class="schedule-time__start">13:00</span>
				<span class="schedule-time__end">15:30</span>
				<span class="schedule-time__label">OV</span>
			</a>
		</div>
	</div>`)
}

func duneRequest() monitor.WatchRequest {
	return monitor.WatchRequest{
		Cinema: monitor.CinemaSpuimarkt,
		Date:   "2026-09-01",
		Movie:  "dune", // deliberately different case than the page
	}
}

func TestProcess_MatchSendsSingleNotification(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: dunePage()}
	notifier := &fakeNotifier{}
	p := New(fetcher, notifier, zap.NewNop())

	outcome := p.Process(context.Background(), duneRequest())

	require.Equal(t, OutcomeMatched, outcome)
	require.Equal(t, []string{"https://www.pathe.nl/cinema/schedules?cinemaId=13&date=2026-09-01"}, fetcher.calls)
	require.Len(t, notifier.sent, 1)

	fields := notifier.sent[0].Embeds[0].Fields
	require.Len(t, fields, 2) // two showtimes, no padding
	require.Equal(t, "[10:00 - 12:30](https://pathe.nl/tickets/1)", fields[0].Value)
}

func TestProcess_NoListingIsNotMatched(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`<div class="schedule"></div>`)}
	notifier := &fakeNotifier{}
	p := New(fetcher, notifier, zap.NewNop())

	req := duneRequest()
	req.Movie = "Oppenheimer"
	outcome := p.Process(context.Background(), req)

	require.Equal(t, OutcomeNotMatched, outcome)
	require.Empty(t, notifier.sent)
}

func TestProcess_TransportFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	p := New(fetcher, notifier, zap.NewNop())

	outcome := p.Process(context.Background(), duneRequest())

	require.Equal(t, OutcomeFetchFailed, outcome)
	require.Empty(t, notifier.sent)
}

func TestProcess_StructuralFailureIsDistinctFromNoMatch(t *testing.T) {
	t.Parallel()

	// Matched title but the poster element is gone: the page changed shape.
	fetcher := &fakeFetcher{body: []byte(`<div class="schedule">
		<div class="schedule-simple__item">
			<h4><a href="/film/dune">Dune</a></h4>
		</div>
	</div>`)}
	notifier := &fakeNotifier{}
	p := New(fetcher, notifier, zap.NewNop())

	outcome := p.Process(context.Background(), duneRequest())

	require.Equal(t, OutcomeParseFailed, outcome)
	require.Empty(t, notifier.sent)
}

func TestProcess_WebhookFailureStillReportsMatched(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: dunePage()}
	notifier := &fakeNotifier{err: errors.New("webhook returned status 500")}
	p := New(fetcher, notifier, zap.NewNop())

	outcome := p.Process(context.Background(), duneRequest())

	// Delivery is fire-and-forget: the failure is logged, the match stands.
	require.Equal(t, OutcomeMatched, outcome)
	require.Len(t, notifier.sent, 1)
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	cases := map[Outcome]string{
		OutcomeMatched:     "matched",
		OutcomeNotMatched:  "not_matched",
		OutcomeFetchFailed: "fetch_failed",
		OutcomeParseFailed: "parse_failed",
		Outcome(42):        "unknown",
	}
	for outcome, want := range cases {
		require.Equal(t, want, fmt.Sprint(outcome))
	}
}
