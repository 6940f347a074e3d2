package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Simplici0/printcalc/internal/pricing"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Amount formats v with thousands separators and two decimals.
func Amount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Write renders a cost breakdown. Values are printed as given; pass a
// Rounded breakdown for cent precision.
func Write(w io.Writer, title string, b pricing.Breakdown, currency string) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	rows := []struct {
		label string
		value float64
		unit  string
	}{
		{"Material Cost per Instance:", b.MaterialCostPerInstance, currency},
		{"Total Material Cost:", b.TotalMaterialCost, currency},
		{"Electricity Cost:", b.ElectricityCost, currency},
		{"Depreciation Cost:", b.DepreciationCost, currency},
		{"Weight per Instance:", b.WeightGPerInstance, "g"},
		{"Total Weight:", b.TotalWeightG, "g"},
		{"Labor Cost:", b.LaborCost, currency},
		{"Total Cost:", b.TotalCost, currency},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s %s\n", r.label, Amount(r.value), r.unit)
	}
	return tw.Flush()
}
