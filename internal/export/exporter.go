package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ColumnConfig defines one column of an exported sheet.
type ColumnConfig struct {
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// Sheet accumulates rows for one worksheet.
type Sheet struct {
	name    string
	columns []ColumnConfig
	rows    [][]interface{}
}

// Exporter builds xlsx workbooks sheet by sheet.
type Exporter struct {
	sheets []*Sheet
}

// NewExporter creates an empty exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// AddSheet starts a new worksheet with the given columns.
func (e *Exporter) AddSheet(name string, columns []ColumnConfig) *Sheet {
	s := &Sheet{name: name, columns: columns}
	e.sheets = append(e.sheets, s)
	return s
}

// AddRow appends one data row. Values are written in column order.
func (s *Sheet) AddRow(values ...interface{}) {
	s.rows = append(s.rows, values)
}

// ToBytes renders the workbook.
func (e *Exporter) ToBytes() ([]byte, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range e.sheets {
		if i == 0 {
			// Reuse the default sheet for the first one.
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("failed to add sheet: %w", err)
			}
		}

		for col, cfg := range sheet.columns {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve column name: %w", err)
			}
			if cfg.Width > 0 {
				if err := f.SetColWidth(sheet.name, name, name, cfg.Width); err != nil {
					return nil, fmt.Errorf("failed to set column width: %w", err)
				}
			}
			cell := fmt.Sprintf("%s1", name)
			if err := f.SetCellValue(sheet.name, cell, cfg.Header); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
			if err := f.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
				return nil, fmt.Errorf("failed to style header: %w", err)
			}
		}

		for rowIdx, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
