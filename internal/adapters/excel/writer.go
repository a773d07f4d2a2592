package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

const sheetName = "Room Prices"

// Column order matches the exported dataframe of the original scraper.
var header = []any{"Hotel", "Price", "Review", "Price/Review", "CheckIn", "CheckOut", "AsOf", "City"}

// Writer renders a room-price snapshot as an xlsx workbook.
type Writer struct{}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Write(rows []domain.RoomPrice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{r.Hotel, r.RoomPrice, r.ReviewScore, r.PricePerReview, r.CheckIn, r.CheckOut, r.AsOf, r.City}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
