package handler

import (
	"fmt"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Devis"
)

var exportHeaders = []interface{}{
	"ID", "N° Devis", "Client", "Email", "Téléphone", "Commune",
	"Montant", "Agence", "Date Réception", "Statut", "Converti",
}

func exportFilename(now time.Time) string {
	return "export-devis-" + now.Format(dateLayout) + ".xlsx"
}

// newQuoteWorkbook renders one row per quote below a bold header row.
// Dates are written in loc.
func newQuoteWorkbook(quotes []entity.Quote, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i := range quotes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := exportRow(&quotes[i], loc)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "K", 18); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func exportRow(q *entity.Quote, loc *time.Location) []interface{} {
	var phone, commune, amount, received interface{} = "", "", "", ""
	if q.ClientPhone != nil {
		phone = *q.ClientPhone
	}
	if q.ClientCommune != nil {
		commune = *q.ClientCommune
	}
	if q.Amount != nil {
		amount = *q.Amount
	}
	if q.ReceivedAt != nil {
		received = q.ReceivedAt.In(loc).Format("02/01/2006")
	}
	converted := "Non"
	if q.Converted() {
		converted = "Oui"
	}
	return []interface{}{
		q.ID.String(),
		q.Number,
		q.ClientName(),
		q.ClientEmail,
		phone,
		commune,
		amount,
		q.AgencyName(),
		received,
		q.Status.Label(),
		converted,
	}
}
