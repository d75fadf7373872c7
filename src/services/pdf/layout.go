package pdf

// Layout holds the page geometry in millimetres for A4 portrait.
type Layout struct {
	PageWidth   float64
	PageHeight  float64
	Margin      float64
	BorderInset float64

	HeaderRuleY   float64
	ContentTop    float64
	ContentBottom float64
	FooterRuleY   float64
	FooterTextY   float64

	ChartX        float64
	ChartY        float64
	ChartWidth    float64
	ChartHeight   float64
	ChartStartY   float64
	ChartWidthPx  int
	ChartHeightPx int

	// OverflowThreshold is the lowest Y at which the expense table of an
	// income-expense report may still start on the current page.
	OverflowThreshold float64
	CustomerChunkSize int

	HeaderRowHeight float64
	RowHeight       float64
	CellFontSize    float64
	BodyFontSize    float64
}

func DefaultLayout() Layout {
	return Layout{
		PageWidth:   210,
		PageHeight:  297,
		Margin:      14,
		BorderInset: 5,

		HeaderRuleY:   30,
		ContentTop:    40,
		ContentBottom: 272,
		FooterRuleY:   277,
		FooterTextY:   283,

		ChartX:        15,
		ChartY:        34,
		ChartWidth:    180,
		ChartHeight:   90,
		ChartStartY:   135,
		ChartWidthPx:  600,
		ChartHeightPx: 300,

		OverflowThreshold: 250,
		CustomerChunkSize: 20,

		HeaderRowHeight: 8,
		RowHeight:       7,
		CellFontSize:    8,
		BodyFontSize:    10,
	}
}

func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}
