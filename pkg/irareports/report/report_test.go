package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(date time.Time, code, duration string, info *models.CatalogEntry) *models.AirtimeRecord {
	r := &models.AirtimeRecord{Date: date, Time: "10:00", Code: code, Info: info}
	r.SetDurationString(duration)
	return r
}

// sampleFiles returns two channel files: Acme airs on both, Globex only on the first,
// and one record on each channel is unmatched.
func sampleFiles() []*models.SourceFile {
	acme := &models.CatalogEntry{Code: "X1", ClientName: "Acme"}
	globex := &models.CatalogEntry{Code: "G1", ClientName: "Globex"}

	return []*models.SourceFile{
		{
			Path:    "channel1.xlsx",
			Channel: "Channel1",
			Records: []*models.AirtimeRecord{
				record(day(2023, 5, 3), "X1", "00:00:30", acme),
				record(day(2023, 5, 4), "G1", "00:00:10", globex),
				record(day(2023, 5, 4), "Z9", "00:00:20", nil),
			},
		},
		{
			Path:    "channel2.xlsx",
			Channel: "Channel2",
			Records: []*models.AirtimeRecord{
				record(day(2023, 6, 1), "X1", "00:00:15", acme),
				record(day(2023, 6, 2), "Z9", "00:00:20", nil),
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	reports := Aggregate(sampleFiles(), DefaultFormat())
	require.Len(t, reports, 2)

	acme := reports[0]
	assert.Equal(t, "Acme", acme.Client)
	require.Len(t, acme.Sections, 2)
	assert.Equal(t, "Channel1", acme.Sections[0].Channel)
	assert.Equal(t, 30.0, acme.Sections[0].TotalSeconds)
	assert.Equal(t, "Channel2", acme.Sections[1].Channel)
	assert.Equal(t, 45.0, acme.TotalSeconds())
	assert.Equal(t, day(2023, 5, 3), acme.MinDate)
	assert.Equal(t, day(2023, 6, 1), acme.MaxDate)

	globex := reports[1]
	assert.Equal(t, "Globex", globex.Client)
	require.Len(t, globex.Sections, 1)
	assert.Equal(t, 1, globex.RecordCount())

	for _, r := range reports {
		for _, s := range r.Sections {
			for _, rec := range s.Records {
				assert.NotEqual(t, "Z9", rec.Code, "unmatched records must not reach a report")
			}
		}
	}
}

func TestAggregate_NoMatches(t *testing.T) {
	files := []*models.SourceFile{{
		Channel: "Channel1",
		Records: []*models.AirtimeRecord{record(day(2023, 5, 1), "Z9", "00:00:20", nil)},
	}}
	assert.Empty(t, Aggregate(files, DefaultFormat()))
}

func TestClients_Collation(t *testing.T) {
	var files []*models.SourceFile
	for _, name := range []string{"Жук", "ёж", "Альфа", "Жук"} {
		files = append(files, &models.SourceFile{Records: []*models.AirtimeRecord{
			record(day(2023, 5, 1), "C", "00:00:01", &models.CatalogEntry{Code: "C", ClientName: name}),
		}})
	}

	assert.Equal(t, []string{"Альфа", "ёж", "Жук"}, Clients(files, DefaultFormat()))
}

func TestFormat(t *testing.T) {
	ru := DefaultFormat()
	assert.Equal(t, "Май", ru.MonthName(time.May))
	assert.Equal(t, "Май", ru.MonthRange(day(2023, 5, 1), day(2023, 5, 31)))
	assert.Equal(t, "Май, Июнь", ru.MonthRange(day(2023, 5, 3), day(2023, 6, 1)))
	assert.Equal(t, "45 сек.", ru.Seconds(45))
	assert.Equal(t, "31,5 сек.", ru.Seconds(31.5))
	assert.Equal(t, "30,1234567 сек.", ru.Seconds(30.1234567))

	en, err := NewFormat("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "May, June", en.MonthRange(day(2023, 5, 3), day(2023, 6, 1)))

	_, err = NewFormat("not a locale")
	assert.Error(t, err)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Acme", "Acme"},
		{`a:b/c\d`, "a_b_c_d"},
		{`ООО "Рога и копыта"`, "ООО__Рога_и_копыта_"},
		{"v1.2; it's", "v1_2__it_s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFileName(tt.in), "input %q", tt.in)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a_b.xlsx"), OutputPath("out", "a/b"))
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "a_b_", sheetTitle("a?b*"))
	long := strings.Repeat("Я", 40)
	assert.Equal(t, strings.Repeat("Я", 31), sheetTitle(long))
}

func TestWriter_Write(t *testing.T) {
	reports := Aggregate(sampleFiles(), DefaultFormat())
	require.NotEmpty(t, reports)

	path := filepath.Join(t.TempDir(), "Acme.xlsx")
	require.NoError(t, NewWriter(DefaultFormat()).Write(reports[0], path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Acme"}, f.GetSheetList())

	cell := func(axis string) string {
		v, err := f.GetCellValue("Acme", axis)
		require.NoError(t, err)
		return v
	}
	raw := func(axis string) string {
		v, err := f.GetCellValue("Acme", axis, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Эфирная справка рекламной компании Acme", cell("B2"))
	assert.Equal(t, "Май, Июнь", cell("F2"))

	assert.Equal(t, "Телеканал Channel1", cell("B4"))
	assert.Equal(t, []string{"Дата", "Время", "Ролик", "Хронометраж"},
		[]string{cell("B5"), cell("C5"), cell("D5"), cell("E5")})
	assert.Equal(t, "45049", raw("B6"))
	assert.Equal(t, "X1", cell("D6"))
	assert.Equal(t, "00:00:30", cell("E6"))
	assert.Equal(t, "ИТОГО", cell("A7"))
	assert.Equal(t, "30 сек.", cell("E7"))

	assert.Equal(t, "Телеканал Channel2", cell("B9"))
	assert.Equal(t, "00:00:15", cell("E11"))
	assert.Equal(t, "15 сек.", cell("E12"))

	area, ok := printArea(f, "Acme")
	require.True(t, ok)
	assert.Equal(t, models.Region{R1: 1, C1: 1, R2: 12, C2: 6}, area)

	width, err := f.GetColWidth("Acme", "C")
	require.NoError(t, err)
	assert.Equal(t, 17.0, width)
}

func TestParseAreaReference(t *testing.T) {
	sheet, area, ok := parseAreaReference("'Acme Ltd'!$A$1:$F$12")
	require.True(t, ok)
	assert.Equal(t, "Acme Ltd", sheet)
	assert.Equal(t, models.Region{R1: 1, C1: 1, R2: 12, C2: 6}, area)

	sheet, area, ok = parseAreaReference("Sheet1!B2:D4")
	require.True(t, ok)
	assert.Equal(t, "Sheet1", sheet)
	assert.Equal(t, 3, area.Rows())

	_, _, ok = parseAreaReference("$A$1:$B$2")
	assert.False(t, ok)
	_, _, ok = parseAreaReference("Sheet1!A1")
	assert.False(t, ok)
}
