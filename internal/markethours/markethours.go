// Package markethours knows when a NYSE opening value can exist for a date,
// so the resolver chain can answer "no data" without asking the upstream.
package markethours

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// NYSE regular session open, New York time
const (
	OpenHour   = 9
	OpenMinute = 30
)

// Calendar evaluates dates against the NYSE session schedule.
// Exchange holidays are not modelled; the data source answers those.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for the exchange timezone.
func NewCalendar(loc *time.Location) *Calendar {
	return &Calendar{loc: loc, now: time.Now}
}

// IsWeekday returns true if the date is Mon–Fri.
func IsWeekday(d domain.Date) bool {
	wd := d.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// OpenTime returns the session open instant of the date.
func (c *Calendar) OpenTime(d domain.Date) time.Time {
	return time.Date(d.Time().Year(), d.Time().Month(), d.Time().Day(), OpenHour, OpenMinute, 0, 0, c.loc)
}

// Check returns a wrapped domain.ErrNotFound when no opening value can exist yet for the date:
// weekends, future dates, and today before the opening bell.
func (c *Calendar) Check(d domain.Date) error {
	if !IsWeekday(d) {
		return fmt.Errorf("%w: %s is a %s, the market is closed", domain.ErrNotFound, d, d.Weekday())
	}

	if c.now().In(c.loc).Before(c.OpenTime(d)) {
		return fmt.Errorf("%w: the market has not opened yet on %s", domain.ErrNotFound, d)
	}

	return nil
}

// Guard is a resolver decorator that rejects dates with no possible opening value
// before they reach the data source.
type Guard struct {
	calendar *Calendar
	next     domain.MarketValueResolver
}

// NewGuard wraps next with the calendar check.
func NewGuard(calendar *Calendar, next domain.MarketValueResolver) *Guard {
	return &Guard{calendar: calendar, next: next}
}

// Resolve implements domain.MarketValueResolver
func (g *Guard) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	if err := g.calendar.Check(date); err != nil {
		return domain.MarketValue{}, err
	}
	return g.next.Resolve(ctx, date)
}
