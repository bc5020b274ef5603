package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rshade/orgboard/internal/cli/pagination"
	"github.com/rshade/orgboard/internal/format"
	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/tui"
)

// orgsJSON is the document printed by orgs --output json.
type orgsJSON struct {
	Sort          string              `json:"sort"`
	Filter        map[string]any      `json:"filter,omitempty"`
	Organisations []orgs.Organisation `json:"organisations"`
	TotalAUM      float64             `json:"total_aum"`
	TotalActivity float64             `json:"total_activity"`
	Pagination    pagination.Meta     `json:"pagination"`
}

func renderOrgsJSON(w io.Writer, vars orgs.Variables, conn *orgs.Connection) error {
	nodes := conn.Nodes
	if nodes == nil {
		nodes = []orgs.Organisation{}
	}
	doc := orgsJSON{
		Sort:          vars.Sort.String(),
		Filter:        vars.Filter.Variables(),
		Organisations: nodes,
		TotalAUM:      conn.TotalAUM,
		TotalActivity: conn.TotalActivity,
		Pagination:    pagination.NewMeta(conn),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding organisations: %w", err)
	}
	return nil
}

// renderOrgsTable prints one page as aligned columns followed by the totals and the
// flags that reach the neighbouring pages.
func renderOrgsTable(w io.Writer, sort orgs.SortSpec, conn *orgs.Connection, now time.Time) error {
	if len(conn.Nodes) == 0 {
		_, err := fmt.Fprintln(w, "No organisations found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORGANISATION\tADDRESS\tKIT\tAUM\tACTIVITY (90 DAYS)\tSCORE\tCREATED")
	for _, o := range conn.Nodes {
		r := tui.NewRow(o, now)
		kit := orgs.KitLabel(o.Kit)
		if kit == "" {
			kit = format.Placeholder
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.DisplayName(), tui.ShortAddress(o.Address), kit, r.AUM, r.Activity, r.Score, r.Created)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	s := tui.NewSummary(conn)
	fmt.Fprintf(w, "\n%s organisations · ◈ %s total AUM · %s total activities (90 days) · sorted by %s %s\n",
		s.Organisations, s.TotalAUM, s.TotalActivity, sort.Field.Label(), sort.Direction.Arrow())

	for _, hint := range pagination.NewMeta(conn).Hints() {
		fmt.Fprintln(w, hint)
	}
	return nil
}
