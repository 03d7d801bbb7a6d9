package pkg

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is a single worksheet of tabular data.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// WriteXLSX renders sheet as an XLSX workbook with a bold header row.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if len(sheet.Headers) > 0 {
		if err := f.SetSheetRow(name, "A1", &sheet.Headers); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", lastCol+"1", style); err != nil {
			return fmt.Errorf("apply header style: %w", err)
		}
		if err := f.SetColWidth(name, "A", lastCol, 20); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return f.Write(w)
}

// SendXLSX renders sheet and sends it as a file download. Rendering happens
// before any header is written so a failure still yields a JSON error.
func SendXLSX(c *gin.Context, filename string, sheet Sheet) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sheet); err != nil {
		Error(c, fmt.Errorf("render xlsx: %w", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
