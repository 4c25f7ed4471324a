package discord

import (
	"fmt"

	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

// agendaAnchor jumps the detail page straight to the showtimes section.
const agendaAnchor = "#agenda"

const footerText = "Generated by *pathe-monitor*"

// Build turns a matched watch request and its extracted listing into a
// webhook notification. Pure data transformation, no I/O.
func Build(req monitor.WatchRequest, listing monitor.Listing) Notification {
	fields := make([]Field, 0, len(listing.Showtimes)+1)
	for _, st := range listing.Showtimes {
		fields = append(fields, Field{
			Name:   st.Label,
			Value:  fmt.Sprintf("[%s - %s](%s)", st.Start, st.End, st.BookingURL),
			Inline: inline(),
		})
	}

	// Discord lays inline fields out three per row. A last row with two
	// fields looks ragged, so top it up with a decorative one. Rows of
	// one (count%3==1) render fine and the first row never needs it.
	if len(fields) > 3 && len(fields)%3 == 2 {
		fields = append(fields, Field{
			Name:   ":rooster:",
			Value:  ":popcorn:",
			Inline: inline(),
		})
	}

	embed := Embed{
		Title:       req.Movie,
		Description: nil,
		URL:         listing.DetailURL + agendaAnchor,
		Fields:      fields,
		Thumbnail:   Thumbnail{URL: listing.PosterURL},
		Footer:      Footer{Text: footerText},
	}

	return Notification{
		Content: fmt.Sprintf(
			"Er zijn tickets beschikbaar voor '**%s**' op **%s** in **%s**.",
			req.Movie, req.Date, req.Cinema,
		),
		Embeds: []Embed{embed},
	}
}

func inline() *bool {
	v := true
	return &v
}
