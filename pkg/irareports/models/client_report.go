package models

import (
	"time"
)

// ChannelSection holds one channel's contribution to a client report.
type ChannelSection struct {
	// Channel is the channel name.
	Channel string `json:"channel"`
	// Path is the source file the records came from.
	Path string `json:"path"`
	// Records contains the client's records from this channel.
	Records []*AirtimeRecord `json:"records"`
	// TotalSeconds is the subtotal of record durations.
	TotalSeconds float64 `json:"total_seconds"`
}

// ClientReport accumulates every channel's airtime for one client.
type ClientReport struct {
	// Client is the client name the report is built for.
	Client string `json:"client"`
	// MinDate is the earliest broadcast date seen; zero until a section is added.
	MinDate time.Time `json:"min_date"`
	// MaxDate is the latest broadcast date seen; zero until a section is added.
	MaxDate time.Time `json:"max_date"`
	// Sections contains one entry per contributing channel file, in input order.
	Sections []ChannelSection `json:"sections"`
}

// NewClientReport creates an empty report for client.
func NewClientReport(client string) *ClientReport {
	return &ClientReport{Client: client}
}

// AddChannel appends the client's records from file as a new section.
// A file without records for the client adds nothing and returns false.
func (r *ClientReport) AddChannel(file *SourceFile) bool {
	records := file.RecordsFor(r.Client)
	if len(records) == 0 {
		return false
	}

	for i, rec := range records {
		if i == 0 && len(r.Sections) == 0 {
			r.MinDate, r.MaxDate = rec.Date, rec.Date
			continue
		}
		if rec.Date.Before(r.MinDate) {
			r.MinDate = rec.Date
		}
		if rec.Date.After(r.MaxDate) {
			r.MaxDate = rec.Date
		}
	}

	r.Sections = append(r.Sections, ChannelSection{
		Channel:      file.Channel,
		Path:         file.Path,
		Records:      records,
		TotalSeconds: totalSeconds(records),
	})
	return true
}

// RecordCount returns the number of records over all sections.
func (r *ClientReport) RecordCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Records)
	}
	return n
}

// TotalSeconds returns the duration total over all sections.
func (r *ClientReport) TotalSeconds() float64 {
	total := 0.0
	for _, s := range r.Sections {
		total += s.TotalSeconds
	}
	return total
}
