// =============================================================================
// Relatório de Visitas - XLSX Export
// =============================================================================
//
// This module writes the visit-report summary workbook: one row per draft
// with the member identification, visit metadata, relationship counts, and
// the validation status. The workbook backs the back-office listing that the
// dashboard renders from, so the column order is part of the contract.
//
// =============================================================================

package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/coopvisita/relatorio-visitas/internal/draft"
	"github.com/coopvisita/relatorio-visitas/internal/validation"
)

// sheetName is the single worksheet of the summary workbook.
const sheetName = "Relatórios"

// headers defines the column order of the summary sheet.
var headers = []string{
	"Arquivo",
	"Nome/Razão Social",
	"CPF/CNPJ",
	"Data da Visita",
	"Gerente",
	"Município/UF",
	"Bancos",
	"Fotos",
	"Situação",
}

// Row is one draft prepared for the summary sheet.
type Row struct {
	// Source names the draft file the row was built from.
	Source string

	// Draft is the parsed draft.
	Draft draft.Draft

	// Violations is the ValidateAll output for the draft.
	Violations []validation.ValidationError
}

// Summary writes the workbook for the given rows to path.
func Summary(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return err
	}

	for i, row := range rows {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save summary workbook: %w", err)
	}
	return nil
}

// writeHeader writes and styles the header row.
func writeHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00AE9D"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	// Wide columns for names and addresses, narrow for counters.
	if err := f.SetColWidth(sheetName, "A", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "F", 22); err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "G", "I", 14)
}

// writeRow writes one draft summary at the given 1-indexed sheet row.
func writeRow(f *excelize.File, sheetRow int, row Row) error {
	d := row.Draft

	cityState := d.City
	if d.State != "" {
		if cityState != "" {
			cityState += "/"
		}
		cityState += d.State
	}

	values := []interface{}{
		row.Source,
		d.EntityName,
		d.TaxID,
		d.VisitDate,
		d.RelationshipManager,
		cityState,
		len(d.Banks),
		photoCount(d),
		status(row.Violations),
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, sheetRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", sheetRow, err)
		}
	}
	return nil
}

// photoCount totals the four attachment lists.
func photoCount(d draft.Draft) int {
	return len(d.FacadePhotos) + len(d.InteriorPhotos) + len(d.StockPhotos) + len(d.OtherPhotos)
}

// status renders the validation outcome for the sheet.
func status(violations []validation.ValidationError) string {
	if len(violations) == 0 {
		return "Válido"
	}
	return fmt.Sprintf("%d pendência(s)", len(violations))
}

// SummaryFilename derives the workbook filename for the given date.
func SummaryFilename(date time.Time) string {
	return "relatorios-visitas-" + date.Format("2006-01-02") + ".xlsx"
}
