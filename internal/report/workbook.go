// Package report exports the checklist as an Excel workbook, one sheet per room.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jask/inventaris/internal/inventory"
)

var checklistHeader = []string{"No", "Barang", "Jumlah", "Ceklist"}

var columnWidths = []float64{6, 40, 10, 12}

// WriteChecklist writes rooms to w as an .xlsx workbook. Each sheet lists the
// room's items in order, followed by the room's stats message.
func WriteChecklist(w io.Writer, rooms inventory.Rooms) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for _, room := range inventory.AllRooms() {
		sheet := string(room)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeRoom(f, sheet, rooms[room], headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRoom(f *excelize.File, sheet string, items []inventory.Item, headerStyle int) error {
	for col, header := range checklistHeader {
		if err := setCell(f, sheet, col+1, 1, header); err != nil {
			return err
		}
		width := columnWidths[col]
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return err
	}

	for i, it := range items {
		row := i + 2
		packed := "Belum"
		if it.Packed {
			packed = "Sudah"
		}
		for col, value := range []any{i + 1, it.Description, it.Quantity, packed} {
			if err := setCell(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}

	// blank row, then the summary line
	summaryRow := len(items) + 3
	if err := setCell(f, sheet, 1, summaryRow, inventory.Summarize(items).Message()); err != nil {
		return err
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
