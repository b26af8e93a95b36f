package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/tradebook/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// formatAmount renders d with two decimals and the locale's digit grouping.
func formatAmount(p *message.Printer, d decimal.Decimal) string {
	rounded := d.Round(2)
	_, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	grouped := p.Sprintf("%d", rounded.Abs().Truncate(0).IntPart())
	if rounded.IsNegative() {
		return "-" + grouped + "." + frac
	}
	return grouped + "." + frac
}

// formatBalance renders a magnitude followed by its D/C or direction marker.
func formatBalance(p *message.Printer, magnitude decimal.Decimal, marker string) string {
	return formatAmount(p, magnitude) + " " + marker
}

// parseDateFlag returns nil for an empty flag value.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := accounting.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, use YYYY-MM-DD: %w", name, value, err)
	}
	return &d, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}
