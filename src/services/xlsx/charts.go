package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// addBarChartFromSheet plots valueCol against column A of dataSheet on a new
// "<dataSheet> - Grafik" sheet. Data rows start at row 3.
func addBarChartFromSheet(file *excelize.File, dataSheet string, valueCol, dataRows int) error {
	if dataRows < 1 {
		return fmt.Errorf("sheet %s has no rows to plot", dataSheet)
	}
	colName, err := excelize.ColumnNumberToName(valueCol)
	if err != nil {
		return err
	}

	startRow := 3
	endRow := startRow + dataRows - 1
	series := []excelize.ChartSeries{{
		Name:       fmt.Sprintf("'%s'!$%s$2", dataSheet, colName),
		Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", dataSheet, startRow, endRow),
		Values:     fmt.Sprintf("'%s'!$%s$%d:$%s$%d", dataSheet, colName, startRow, colName, endRow),
	}}

	chart := excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title: []excelize.RichTextRun{
			{
				Text: dataSheet,
				Font: &excelize.Font{Bold: true, Size: 16},
			},
		},
		Legend: excelize.ChartLegend{
			Position: "none",
		},
		XAxis: excelize.ChartAxis{
			Font: excelize.Font{Size: 10},
		},
		YAxis: excelize.ChartAxis{
			Font:           excelize.Font{Size: 10},
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 540,
		},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
			Fill: excelize.Fill{
				Type:  "solid",
				Color: []string{"#E6F7FF"},
			},
		},
		Format: excelize.GraphicOptions{
			OffsetX: 15,
			OffsetY: 10,
		},
	}

	graphSheetName := fmt.Sprintf("%s - Grafik", dataSheet)
	if _, err := file.NewSheet(graphSheetName); err != nil {
		return err
	}
	if err := file.AddChart(graphSheetName, "A1", &chart); err != nil {
		return fmt.Errorf("failed to add chart to sheet %s: %w", graphSheetName, err)
	}
	return nil
}
