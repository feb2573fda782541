// Package loader reads the advertisement catalog and channel airtime sheets.
package loader

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/tulumbas/irareports/pkg/irareports/models"
	"github.com/tulumbas/irareports/pkg/irareports/table"
	"github.com/tulumbas/irareports/pkg/irareports/workbook"
)

// Workbook is the part of an opened workbook the loaders read from.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (table.Sheet, error)
}

// CatalogOptions configures catalog loading.
type CatalogOptions struct {
	// Sheet is the name of the catalog sheet.
	Sheet string `yaml:"sheet" split_words:"true" validate:"required"`
	// HeaderRow is the 1-based row holding the catalog headers.
	HeaderRow int `yaml:"header_row" split_words:"true" validate:"gte=1"`
	// Table holds the scan limits.
	Table table.TableOptions `yaml:"table" split_words:"true"`
}

// DefaultCatalogOptions returns the layout of the master catalog workbook.
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{
		Sheet:     "ролики",
		HeaderRow: 2,
		Table:     table.DefaultTableOptions().WithMaxColumns(7),
	}
}

// CatalogBinder binds catalog rows: field 1 is the code, 2 the ad name,
// 3 the nominal length and 4 the client. Rows without a code are absent.
type CatalogBinder struct {
	validate *validator.Validate
}

// NewCatalogBinder creates a CatalogBinder.
func NewCatalogBinder() *CatalogBinder {
	return &CatalogBinder{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// DefineHeaders implements table.Binder. Columns are addressed by position.
func (b *CatalogBinder) DefineHeaders([]string) {}

// CreateInstance implements table.Binder.
func (b *CatalogBinder) CreateInstance(row table.Row, _ int) (*models.CatalogEntry, bool) {
	entry := &models.CatalogEntry{
		Code:       row.Field(1).String(),
		AdName:     row.Field(2).String(),
		Length:     row.Field(3).String(),
		ClientName: row.Field(4).String(),
	}
	if err := b.validate.Struct(entry); err != nil {
		return nil, false
	}
	return entry, true
}

// LoadCatalog reads the catalog sheet of wb. A repeated code replaces the earlier entry.
// A missing catalog sheet is returned as a *SheetError wrapping workbook.ErrSheetNotFound.
func LoadCatalog(wb Workbook, opts CatalogOptions) (models.Catalog, error) {
	sheet, err := wb.Sheet(opts.Sheet)
	if err != nil {
		return nil, NewSheetError("", opts.Sheet, err)
	}

	catalog := models.Catalog{}
	for entry, err := range table.Read(sheet, table.Binder[*models.CatalogEntry](NewCatalogBinder()), opts.Table, opts.HeaderRow, 1) {
		if err != nil {
			return nil, NewSheetError("", opts.Sheet, err)
		}
		catalog.Put(entry)
	}
	return catalog, nil
}

// LoadCatalogFile opens path, loads its catalog and closes the file.
func LoadCatalogFile(path string, opts CatalogOptions) (models.Catalog, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	catalog, err := LoadCatalog(wb, opts)
	if err != nil {
		var se *SheetError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return catalog, nil
}
