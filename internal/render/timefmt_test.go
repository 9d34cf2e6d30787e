package render

import (
	"testing"
	"time"
)

func TestLayoutTimeFormatterDefaults(t *testing.T) {
	f := DefaultTimes()

	if got := f.Full(sampleTime); got != "Tue, Feb 25, 2020 3:49 PM" {
		t.Errorf("Full = %q", got)
	}
	if got := f.Short(sampleTime); got != "Tue 3:49 PM" {
		t.Errorf("Short = %q", got)
	}
}

func TestLayoutTimeFormatterMatchesPlaceholders(t *testing.T) {
	p := PlaceholderTimes()
	f := LayoutTimeFormatter{}

	if f.Full(sampleTime) != p.Full(time.Time{}) || f.Short(sampleTime) != p.Short(time.Time{}) {
		t.Errorf("layout output %q/%q differs from placeholders %q/%q",
			f.Full(sampleTime), f.Short(sampleTime), p.FullText, p.ShortText)
	}
}

func TestLayoutTimeFormatterLocation(t *testing.T) {
	f := LayoutTimeFormatter{
		FullLayout:  "2006-01-02 15:04",
		ShortLayout: "15:04",
		Location:    time.FixedZone("UTC+2", 2*60*60),
	}

	if got := f.Full(sampleTime); got != "2020-02-25 17:49" {
		t.Errorf("Full = %q, want %q", got, "2020-02-25 17:49")
	}
	if got := f.Short(sampleTime); got != "17:49" {
		t.Errorf("Short = %q, want %q", got, "17:49")
	}
}

func TestLayoutTimeFormatterNormalizesToUTC(t *testing.T) {
	local := sampleTime.In(time.FixedZone("UTC-5", -5*60*60))
	if got := DefaultTimes().Short(local); got != "Tue 3:49 PM" {
		t.Errorf("Short = %q, want UTC rendering", got)
	}
}

func TestHumanTimeFormatter(t *testing.T) {
	f := HumanTimeFormatter{
		Layout: DefaultTimes(),
		Now:    sampleTime.Add(3 * 24 * time.Hour),
	}

	if got := f.Short(sampleTime); got != "3 days ago" {
		t.Errorf("Short = %q, want %q", got, "3 days ago")
	}
	if got := f.Full(sampleTime); got != "Tue, Feb 25, 2020 3:49 PM" {
		t.Errorf("Full = %q", got)
	}
}
