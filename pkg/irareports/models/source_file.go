package models

// SourceFile represents one loaded channel sheet.
type SourceFile struct {
	// Path is the file the sheet was read from.
	Path string `json:"path"`
	// SheetName is the name of the sheet the records came from.
	SheetName string `json:"sheet_name"`
	// Channel is the channel name taken from the sheet name.
	Channel string `json:"channel"`
	// Date is the yyyy-MM-dd token taken from the sheet name.
	Date string `json:"date"`
	// Records contains the airtime records in sheet order.
	Records []*AirtimeRecord `json:"records,omitempty"`
}

// Count returns the number of loaded records.
func (f *SourceFile) Count() int {
	return len(f.Records)
}

// TotalSeconds sums the durations of all records.
func (f *SourceFile) TotalSeconds() float64 {
	return totalSeconds(f.Records)
}

// Matched returns the number of records joined to a catalog entry.
func (f *SourceFile) Matched() int {
	n := 0
	for _, r := range f.Records {
		if r.Info != nil {
			n++
		}
	}
	return n
}

// RecordsFor returns the records whose catalog entry belongs to client.
func (f *SourceFile) RecordsFor(client string) []*AirtimeRecord {
	var out []*AirtimeRecord
	for _, r := range f.Records {
		if r.Info != nil && r.Info.ClientName == client {
			out = append(out, r)
		}
	}
	return out
}

func totalSeconds(records []*AirtimeRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Duration.Seconds()
	}
	return total
}
