package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"rentdesk/internal/model"
)

// Write writes output in the requested format.
//
// Supported formats:
// - table (default)
// - json
// - edn
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "table":
		return WriteTable(w, v)
	case "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders the known entity shapes as aligned text tables.
// Unknown values fall back to pretty JSON so commands never lose output.
func WriteTable(w io.Writer, v any) error {
	switch t := v.(type) {
	case []model.Property:
		return propertyTable(w, t)
	case []model.Subscription:
		return subscriptionTable(w, t)
	case []model.User:
		return userTable(w, t)
	case model.Property:
		return propertyTable(w, []model.Property{t})
	case model.Subscription:
		return subscriptionTable(w, []model.Subscription{t})
	case model.User:
		return userTable(w, []model.User{t})
	default:
		return WriteJSON(w, v, true)
	}
}

// WritePageFooter prints the pagination line CLI list commands append
// below a table.
func WritePageFooter(w io.Writer, meta model.PaginationMeta) {
	if meta.TotalPages == 0 {
		return
	}
	fmt.Fprintf(w, "page %d/%d (%d items)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
}

func propertyTable(w io.Writer, items []model.Property) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSTATUS\tPRICE\tFEATURED\tCITY")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			clip(p.Title, 40),
			p.ListingType,
			p.Status,
			model.FormatAmount(p.Price),
			yesNo(p.Featured),
			p.City,
		)
	}
	return tw.Flush()
}

func subscriptionTable(w io.Writer, items []model.Subscription) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAN\tCYCLE\tSTATUS\tAMOUNT\tPERIOD END")
	for _, s := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			clip(s.Plan, 30),
			s.BillingCycle,
			s.Status,
			model.FormatAmount(s.Amount),
			day(s.CurrentPeriodEnd),
		)
	}
	return tw.Flush()
}

func userTable(w io.Writer, items []model.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tVERIFIED")
	for _, u := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID,
			clip(u.Name, 30),
			clip(u.Email, 40),
			u.Role,
			u.Status,
			yesNo(u.Verified),
		)
	}
	return tw.Flush()
}

func clip(s string, max int) string {
	s = strings.ReplaceAll(s, "\t", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func day(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
