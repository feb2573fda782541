package report

import (
	"slices"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

// Clients returns the distinct client names referenced by matched records,
// ordered by the format's collation.
func Clients(files []*models.SourceFile, f Format) []string {
	seen := make(map[string]bool)
	var clients []string
	for _, file := range files {
		for _, rec := range file.Records {
			name := rec.ClientName()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			clients = append(clients, name)
		}
	}
	slices.SortStableFunc(clients, f.Compare)
	return clients
}

// Aggregate builds one report per client. Sections follow the order of files;
// a file without records for a client adds no section to its report.
func Aggregate(files []*models.SourceFile, f Format) []*models.ClientReport {
	clients := Clients(files, f)
	reports := make([]*models.ClientReport, 0, len(clients))
	for _, client := range clients {
		r := models.NewClientReport(client)
		for _, file := range files {
			r.AddChannel(file)
		}
		reports = append(reports, r)
	}
	return reports
}
