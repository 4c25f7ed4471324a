// Package monitor defines the core types and interfaces for the ticket
// monitoring pipeline: watch requests, extracted schedule listings and the
// contracts between the fetch, extract and notify stages.
package monitor

import (
	"encoding/json"
	"fmt"
)

// Origin is the site all schedule and booking URLs are rooted at.
const Origin = "https://www.pathe.nl"

// Cinema is one of the monitored venues. The numeric value is the cinema id
// used by the schedules endpoint and is fixed upstream.
type Cinema int

// The supported venues.
const (
	CinemaBuitenhof Cinema = 7
	CinemaSpuimarkt Cinema = 13
	CinemaDelft     Cinema = 18
)

var cinemaNames = map[Cinema]string{
	CinemaBuitenhof: "Buitenhof",
	CinemaSpuimarkt: "Spuimarkt",
	CinemaDelft:     "Delft",
}

// Name returns the bare venue name, e.g. "Buitenhof".
func (c Cinema) Name() string {
	if name, ok := cinemaNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cinema(%d)", int(c))
}

// String returns the display name used in logs and notifications.
func (c Cinema) String() string {
	return "Pathé " + c.Name()
}

// MarshalJSON encodes the cinema as its bare name so the watch-list
// document stays editable by hand.
func (c Cinema) MarshalJSON() ([]byte, error) {
	name, ok := cinemaNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown cinema id %d", int(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a bare venue name. Unknown names are rejected so a
// typo in the watch-list document surfaces at load time.
func (c *Cinema) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode cinema: %w", err)
	}
	for id, n := range cinemaNames {
		if n == name {
			*c = id
			return nil
		}
	}
	return fmt.Errorf("unknown cinema %q", name)
}

// WatchRequest is one (cinema, date, movie) tuple the monitor evaluates
// every tick. The tuple itself is the identity; there is no surrogate id.
type WatchRequest struct {
	Cinema Cinema `json:"cinema"`
	Date   string `json:"date"`
	Movie  string `json:"movie"`
}

// ScheduleURL builds the schedules endpoint URL for this request.
func (r WatchRequest) ScheduleURL() string {
	return fmt.Sprintf("%s/cinema/schedules?cinemaId=%d&date=%s", Origin, int(r.Cinema), r.Date)
}

// String renders the request for logs and for the notification content.
// Both must show the identical phrasing.
func (r WatchRequest) String() string {
	return fmt.Sprintf("'%s' op %s in %s", r.Movie, r.Date, r.Cinema)
}

// WatchList is the persisted set of requests to monitor, reloaded fresh
// at the start of every tick.
type WatchList struct {
	Requests []WatchRequest `json:"requests"`
}

// Showtime is one bookable slot inside a matched schedule block. Derived
// transiently from a parsed page, never persisted.
type Showtime struct {
	Label      string
	Start      string
	End        string
	BookingURL string
}

// Listing is the extracted schedule block for a matched movie.
type Listing struct {
	Title     string
	DetailURL string
	PosterURL string
	Showtimes []Showtime
}
