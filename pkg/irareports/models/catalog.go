// Package models defines data structures shared by the loaders and the report builder.
package models

// CatalogEntry represents one advertisement of the master catalog.
type CatalogEntry struct {
	// Code is the advertisement code used as the catalog key.
	Code string `json:"code" validate:"required"`
	// ClientName is the advertising client owning the advertisement.
	ClientName string `json:"client_name"`
	// AdName is the advertisement title.
	AdName string `json:"ad_name"`
	// Length is the nominal length as written in the catalog.
	Length string `json:"length"`
}

// Catalog maps an advertisement code to its entry.
type Catalog map[string]*CatalogEntry

// Put stores the entry under its code, replacing any previous entry.
func (c Catalog) Put(e *CatalogEntry) {
	c[e.Code] = e
}

// Lookup returns the entry for code, or nil when the code is unknown.
func (c Catalog) Lookup(code string) *CatalogEntry {
	return c[code]
}
