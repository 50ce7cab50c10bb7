// Package export produces XLSX workbooks of booking history for back-office
// use.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fleetyard/rental-backend/internal/booking"
	"github.com/fleetyard/rental-backend/internal/schedule"
)

const dateLayout = "2006-01-02"

var sheetNames = map[schedule.Kind]string{
	schedule.KindReservation: "Reservations",
	schedule.KindMaintenance: "Maintenance",
}

var headerColumns = []string{"ID", "Client / Label", "Start", "End", "Status", "Created"}

// WriteWorkbook writes one sheet per booking kind to w. Bookings of a kind
// with no rows still get their sheet so the workbook shape is stable.
func WriteWorkbook(w io.Writer, bookings []*booking.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	byKind := map[schedule.Kind][]*booking.Booking{}
	for _, b := range bookings {
		byKind[b.Kind] = append(byKind[b.Kind], b)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, kind := range []schedule.Kind{schedule.KindReservation, schedule.KindMaintenance} {
		name := sheetNames[kind]
		if i == 0 {
			f.SetSheetName("Sheet1", name)
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %s: %w", name, err)
			}
		}

		if err := writeSheet(f, name, headerStyle, byKind[kind]); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, rows []*booking.Booking) error {
	for col, title := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headerColumns), 1)
	_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for i, b := range rows {
		who := b.Label
		if who == "" && b.ClientName != nil {
			who = *b.ClientName
		}
		values := []interface{}{
			b.ID,
			who,
			b.StartDate.Format(dateLayout),
			b.EndDate.Format(dateLayout),
			string(b.Status),
			b.CreatedAt.Format(dateLayout),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
