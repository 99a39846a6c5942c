package services

import (
	"context"
	"fmt"

	"networth/src/models"

	"github.com/xuri/excelize/v2"
)

type ReportServiceI interface {
	GenerateXLSXReport(ctx context.Context, holdings []models.Holding) (*excelize.File, error)
}

// ReportService renders a user's portfolio as an XLSX workbook with one
// sheet of holdings and one sheet of aggregates.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

var holdingHeaders = []string{"Type", "Name", "Ticker", "Quantity", "Buy Price", "Current Price", "Currency", "Created At"}

func (rs *ReportService) GenerateXLSXReport(_ context.Context, holdings []models.Holding) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := "Holdings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, header := range holdingHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for i := range holdings {
		h := &holdings[i]
		ticker := ""
		if h.Ticker != nil {
			ticker = *h.Ticker
		}
		row := []interface{}{
			string(h.Type), h.Name, ticker, h.Quantity, h.BuyPrice, h.CurrentPrice,
			h.Currency, h.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := rs.addSummarySheet(f, holdings); err != nil {
		return nil, err
	}

	return f, nil
}

func (rs *ReportService) addSummarySheet(f *excelize.File, holdings []models.Holding) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	summary := Summarize(holdings)
	rows := [][]interface{}{
		{"Net Worth", summary.NetWorth},
		{"Invested Value", summary.InvestedValue},
		{"Profit / Loss", summary.ProfitLoss},
	}
	for typeName, value := range summary.ByType {
		rows = append(rows, []interface{}{fmt.Sprintf("Total %s", typeName), value})
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
