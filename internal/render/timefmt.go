package render

import (
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Default layouts for message dates in exported HTML.
const (
	FullTimeLayout  = "Mon, Jan 2, 2006 3:04 PM"
	ShortTimeLayout = "Mon 3:04 PM"
)

// TimeFormatter produces the two date strings shown under each message: the
// full timestamp (tooltip) and the short one (visible label).
type TimeFormatter interface {
	Full(t time.Time) string
	Short(t time.Time) string
}

// FixedTimeFormatter ignores the timestamp and always returns the same pair
// of strings. Useful for golden output.
type FixedTimeFormatter struct {
	FullText  string
	ShortText string
}

// PlaceholderTimes returns the literal dates early exports carried before
// timestamps were wired through.
func PlaceholderTimes() FixedTimeFormatter {
	return FixedTimeFormatter{
		FullText:  "Tue, Feb 25, 2020 3:49 PM",
		ShortText: "Tue 3:49 PM",
	}
}

func (f FixedTimeFormatter) Full(time.Time) string  { return f.FullText }
func (f FixedTimeFormatter) Short(time.Time) string { return f.ShortText }

// LayoutTimeFormatter formats timestamps with Go layouts in a fixed
// location, so output depends only on the message.
type LayoutTimeFormatter struct {
	FullLayout  string
	ShortLayout string
	Location    *time.Location // nil means UTC
}

// DefaultTimes returns a LayoutTimeFormatter using the default layouts in UTC.
func DefaultTimes() LayoutTimeFormatter {
	return LayoutTimeFormatter{FullLayout: FullTimeLayout, ShortLayout: ShortTimeLayout}
}

func (f LayoutTimeFormatter) Full(t time.Time) string {
	return f.in(t).Format(orDefault(f.FullLayout, FullTimeLayout))
}

func (f LayoutTimeFormatter) Short(t time.Time) string {
	return f.in(t).Format(orDefault(f.ShortLayout, ShortTimeLayout))
}

func (f LayoutTimeFormatter) in(t time.Time) time.Time {
	if f.Location == nil {
		return t.UTC()
	}
	return t.In(f.Location)
}

// HumanTimeFormatter shows the short date as a relative phrase ("3 days
// ago") measured from Now. Output changes when Now does.
type HumanTimeFormatter struct {
	Layout LayoutTimeFormatter
	Now    time.Time
}

func (f HumanTimeFormatter) Full(t time.Time) string { return f.Layout.Full(t) }

func (f HumanTimeFormatter) Short(t time.Time) string {
	return humanize.RelTime(t, f.Now, "ago", "from now")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
