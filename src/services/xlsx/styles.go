package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const currencyFormat = `"Rp"#,##0;-"Rp"#,##0`

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// applyStylesToAllSheets styles the title and header rows, borders the data
// and formats currency columns. Sheets without cells are skipped.
func applyStylesToAllSheets(f *excelize.File, currencyCols map[string][]int) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2980B9"}, Pattern: 1},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return err
	}
	format := currencyFormat
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Border:       thinBorder,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &format,
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}
		if len(rows) < 2 {
			continue
		}

		lastRow := len(rows)
		lastCol := len(rows[1])
		lastColName, err := excelize.ColumnNumberToName(lastCol)
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(sheetName, "A1", lastColName+"1", titleStyle); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheetName, 1, 24); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A2", lastColName+"2", headerStyle); err != nil {
			return err
		}

		if lastRow > 2 {
			end := fmt.Sprintf("%s%d", lastColName, lastRow)
			if err := f.SetCellStyle(sheetName, "A3", end, dataStyle); err != nil {
				return err
			}
			for _, col := range currencyCols[sheetName] {
				name, err := excelize.ColumnNumberToName(col)
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheetName, name+"3", fmt.Sprintf("%s%d", name, lastRow), moneyStyle); err != nil {
					return err
				}
			}
		}

		for i := 1; i <= lastCol; i++ {
			colName, err := excelize.ColumnNumberToName(i)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheetName, colName, colName, columnWidth(rows, i-1)); err != nil {
				return err
			}
		}
	}
	return nil
}

// columnWidth sizes a column to its longest value below the title row.
func columnWidth(rows [][]string, col int) float64 {
	width := 12
	for _, row := range rows[1:] {
		if col < len(row) && len(row[col])+2 > width {
			width = len(row[col]) + 2
		}
	}
	if width > 60 {
		width = 60
	}
	return float64(width)
}
