// Package output renders towers for human and machine consumption.
// This package produces output only; it never derives tower state.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/naming"
	"github.com/lcalmvr/sub-assistant-sub001/core/rate"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
)

// Format represents output format type
type Format string

const (
	// FormatPretty is a human-readable stack table
	FormatPretty Format = "pretty"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Render writes the tower in the requested format. FormatJSON emits the
// persistable wire form; FormatPretty draws the stack top-down the way
// an underwriter reads a program.
func Render(w io.Writer, t tower.Tower, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatPretty, "":
		return renderPretty(w, t)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderPretty(w io.Writer, t tower.Tower) error {
	if _, err := fmt.Fprintf(w, "%s  (%s)\n", t.Name, t.Position); err != nil {
		return err
	}
	if len(t.Layers) == 0 {
		_, err := fmt.Fprintln(w, "  (empty stack)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tCARRIER\tROLE\tLIMIT\tATTACH\tQS SLOT\tPREMIUM\tRPM\tILF")

	// Top of the stack first.
	for i := len(t.Layers) - 1; i >= 0; i-- {
		l := t.Layers[i]
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			carrierOrDash(l.Carrier),
			roleMark(l.Role),
			naming.Compact(l.Limit),
			naming.Compact(l.Attachment),
			optCompact(l.QuotaShare),
			optCompact(l.Premium),
			rpmCell(l),
			ilfCell(l, t.Layers[0]),
		)
	}
	return tw.Flush()
}

func carrierOrDash(c string) string {
	if strings.TrimSpace(c) == "" {
		return "-"
	}
	return c
}

func roleMark(r tower.Role) string {
	if r == tower.RoleWriting {
		return "writing"
	}
	return "following"
}

func optCompact(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return naming.Compact(v.Decimal)
}

func rpmCell(l tower.Layer) string {
	rpm, ok := rate.RPM(l)
	if !ok {
		return "-"
	}
	return rpm.Round(2).String()
}

func ilfCell(l, base tower.Layer) string {
	ilf, ok := rate.ILF(l, base)
	if !ok {
		return "-"
	}
	return ilf.Round(1).String() + "%"
}
