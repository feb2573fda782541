package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

const printAreaName = "_xlnm.Print_Area"

// setPrintArea limits printing of sheet to area.
func setPrintArea(f *excelize.File, sheet string, area models.Region) error {
	ref, err := areaReference(sheet, area)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: ref,
		Scope:    sheet,
	})
}

// areaReference formats area as 'Sheet'!$A$1:$F$10.
func areaReference(sheet string, area models.Region) (string, error) {
	from, err := excelize.CoordinatesToCellName(area.C1, area.R1, true)
	if err != nil {
		return "", err
	}
	to, err := excelize.CoordinatesToCellName(area.C2, area.R2, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("'%s'!%s:%s", sheet, from, to), nil
}

// printArea returns the print area defined for sheet in a written report.
func printArea(f *excelize.File, sheet string) (models.Region, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		name, area, ok := parseAreaReference(dn.RefersTo)
		if ok && name == sheet {
			return area, true
		}
	}
	return models.Region{}, false
}

// parseAreaReference parses 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10.
func parseAreaReference(ref string) (string, models.Region, bool) {
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", models.Region{}, false
	}
	sheet := strings.Trim(strings.TrimSpace(ref[:idx]), "'")

	parts := strings.Split(strings.ReplaceAll(ref[idx+1:], "$", ""), ":")
	if len(parts) != 2 {
		return "", models.Region{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", models.Region{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", models.Region{}, false
	}
	return sheet, models.Region{R1: r1, C1: c1, R2: r2, C2: c2}, true
}
