package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/notify"
	"github.com/dharmasatrya/aerohub/internal/query"
	"github.com/dharmasatrya/aerohub/internal/submission"
	"github.com/dharmasatrya/aerohub/pkg/units"
)

type column struct {
	title string
	field models.SortField
}

var columns = []column{
	{"Key", models.SortKey},
	{"ICAO", models.SortICAO},
	{"IATA", models.SortIATA},
	{"Name", models.SortName},
	{"City", models.SortCity},
	{"Region", models.SortNone},
	{"Elevation", models.SortElevation},
	{"Position", models.SortNone},
	{"Timezone", models.SortTimezone},
}

func headerTitle(c column, params query.ViewParameters) string {
	if c.field == models.SortNone || c.field != params.SortField {
		return c.title
	}
	if params.SortDirection == models.SortDesc {
		return c.title + " ▼"
	}
	return c.title + " ▲"
}

func renderPage(w io.Writer, page models.Page, params query.ViewParameters) {
	if len(page.Content) == 0 {
		_, _ = fmt.Fprintln(w, "No airports found.")
		renderFooter(w, page, params)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = headerTitle(c, params)
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 7, Align: text.AlignRight},
	})

	for _, a := range page.Content {
		t.AppendRow(table.Row{
			a.Key,
			a.ICAO,
			dash(a.IATA),
			a.Name,
			dash(a.City),
			a.Region(),
			units.Elevation(a.Elevation),
			units.Coordinate(a.Lat, a.Lon),
			a.Timezone,
		})
	}

	t.Render()
	renderFooter(w, page, params)
}

func renderFooter(w io.Writer, page models.Page, params query.ViewParameters) {
	current := params.PageIndex + 1
	if page.TotalPages == 0 {
		current = 0
	}
	var filters []string
	if s := strings.TrimSpace(params.SearchText); s != "" {
		filters = append(filters, fmt.Sprintf("search %q", s))
	}
	if s := strings.TrimSpace(params.State); s != "" {
		filters = append(filters, fmt.Sprintf("state %q", s))
	}
	line := fmt.Sprintf("Page %d of %d (%d airports, %d per page)", current, page.TotalPages, page.TotalElements, params.PageSize)
	if len(filters) > 0 {
		line += ", " + strings.Join(filters, ", ")
	}
	_, _ = fmt.Fprintln(w, line)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderFieldErrors lists failures in form order, grouped by tab.
func renderFieldErrors(w io.Writer, errs submission.FieldErrors) {
	for _, f := range submission.Fields {
		msg, ok := errs[f]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "  [%s] %s: %s\n", submission.TabOf(f), f, msg)
	}
}

func renderNotification(w io.Writer, n notify.Notification) {
	mark := "✓"
	if n.Kind == notify.KindError {
		mark = "✗"
	}
	_, _ = fmt.Fprintf(w, "%s %s: %s\n", mark, n.Title, n.Message)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
