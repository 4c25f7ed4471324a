// Package extract turns a schedule-page fragment into showtime listings.
//
// The selectors below are the contract with the upstream page. When one of
// them stops matching inside a block we already matched on title, that is a
// page-shape change, reported as *StructuralError so callers can tell it
// apart from the ordinary "movie not listed yet" case.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

// linkOrigin prefixes the relative booking and detail paths found in the
// fragment. The upstream emits them relative to the apex domain.
const linkOrigin = "https://pathe.nl"

const (
	selItem      = "div.schedule-simple__item"
	selTitle     = "h4 a"
	selThumbnail = "div.schedule-simple__poster img"
	selShowtime  = "a.schedule-time"
	selStart     = "span.schedule-time__start"
	selEnd       = "span.schedule-time__end"
	selLabel     = "span.schedule-time__label"
)

// StructuralError reports a matched schedule block that is missing an
// element the contract requires. It signals the source page changed shape,
// not a transient condition.
type StructuralError struct {
	Missing string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("schedule markup missing %s", e.Missing)
}

// Listing scans the fragment for the first schedule block whose title
// equals movie case-insensitively and extracts it. found is false when no
// block matches; err is non-nil only for unparseable input or a
// *StructuralError on a matched block.
func Listing(body []byte, movie string) (listing monitor.Listing, found bool, err error) {
	doc, perr := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if perr != nil {
		return monitor.Listing{}, false, fmt.Errorf("parse schedule page: %w", perr)
	}

	want := strings.ToLower(movie)
	doc.Find(selItem).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := item.Find(selTitle).First()
		if title.Length() == 0 {
			// A block without a title can never match; skip it.
			return true
		}
		if strings.ToLower(title.Text()) != want {
			return true
		}
		listing, err = buildListing(item, title)
		found = err == nil
		return false
	})
	return listing, found, err
}

func buildListing(item, title *goquery.Selection) (monitor.Listing, error) {
	detail, ok := title.Attr("href")
	if !ok {
		return monitor.Listing{}, &StructuralError{Missing: selTitle + "[href]"}
	}

	poster, ok := item.Find(selThumbnail).First().Attr("src")
	if !ok {
		return monitor.Listing{}, &StructuralError{Missing: selThumbnail + "[src]"}
	}

	var (
		showtimes []monitor.Showtime
		serr      error
	)
	item.Find(selShowtime).EachWithBreak(func(_ int, slot *goquery.Selection) bool {
		st, err := buildShowtime(slot)
		if err != nil {
			serr = err
			return false
		}
		showtimes = append(showtimes, st)
		return true
	})
	if serr != nil {
		return monitor.Listing{}, serr
	}

	return monitor.Listing{
		Title:     title.Text(),
		DetailURL: linkOrigin + detail,
		PosterURL: poster,
		Showtimes: showtimes,
	}, nil
}

func buildShowtime(slot *goquery.Selection) (monitor.Showtime, error) {
	href, ok := slot.Attr("data-href")
	if !ok {
		return monitor.Showtime{}, &StructuralError{Missing: selShowtime + "[data-href]"}
	}

	start := slot.Find(selStart).First()
	if start.Length() == 0 {
		return monitor.Showtime{}, &StructuralError{Missing: selStart}
	}
	end := slot.Find(selEnd).First()
	if end.Length() == 0 {
		return monitor.Showtime{}, &StructuralError{Missing: selEnd}
	}
	label := slot.Find(selLabel).First()
	if label.Length() == 0 {
		return monitor.Showtime{}, &StructuralError{Missing: selLabel}
	}

	return monitor.Showtime{
		Label:      label.Text(),
		Start:      start.Text(),
		End:        end.Text(),
		BookingURL: linkOrigin + href,
	}, nil
}
