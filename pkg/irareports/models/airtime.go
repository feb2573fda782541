package models

import (
	"time"
)

// AirtimeRecord represents one broadcast of an advertisement on a channel.
type AirtimeRecord struct {
	// Date is the broadcast date (date part only).
	Date time.Time `json:"date"`
	// Time is the time of day as exported by the channel.
	Time string `json:"time"`
	// Code is the advertisement code.
	Code string `json:"code"`
	// DurationString is the duration text as exported by the channel.
	DurationString string `json:"duration"`
	// Duration is DurationString parsed; zero when the text is not a duration.
	Duration time.Duration `json:"-"`
	// Info is the matched catalog entry, nil when the code is not in the catalog.
	Info *CatalogEntry `json:"-"`
}

// SetDurationString stores s and updates Duration when s parses.
func (r *AirtimeRecord) SetDurationString(s string) {
	r.DurationString = s
	if d, ok := ParseDuration(s); ok {
		r.Duration = d
	}
}

// ClientName returns the client of the matched catalog entry, or "" when unmatched.
func (r *AirtimeRecord) ClientName() string {
	if r.Info == nil {
		return ""
	}
	return r.Info.ClientName
}
