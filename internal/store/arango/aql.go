package arango

import (
	"strings"
	"time"

	"github.com/rshade/orgboard/internal/orgs"
	"github.com/rshade/orgboard/internal/store"
)

// sortAttributes maps sort fields onto document attributes. Only these attributes are
// ever interpolated into AQL.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var sortAttributes = map[orgs.SortField]string{
	orgs.SortByENS:       "ens",
	orgs.SortByAUM:       "aum",
	orgs.SortByActivity:  "activity",
	orgs.SortByScore:     "score",
	orgs.SortByCreatedAt: "createdAt",
}

// filterClause renders the FILTER lines for f and adds their bind variables to vars.
func filterClause(f orgs.Filter, vars map[string]interface{}) string {
	var b strings.Builder
	if len(f.Kit) > 0 {
		kits := make([]string, len(f.Kit))
		for i, k := range f.Kit {
			kits[i] = strings.ToLower(k)
		}
		vars["kits"] = kits
		b.WriteString("  FILTER LOWER(o.kit) IN @kits\n")
	}
	if r := f.CreatedAt; r != nil {
		if !r.From.IsZero() {
			vars["from"] = r.From.UTC().Format(time.RFC3339)
			b.WriteString("  FILTER o.createdAt >= @from\n")
		}
		if !r.To.IsZero() {
			vars["to"] = r.To.UTC().Format(time.RFC3339)
			b.WriteString("  FILTER o.createdAt <= @to\n")
		}
	}
	if f.Profile {
		b.WriteString("  FILTER o.profile != null\n")
	}
	return b.String()
}

// buildListQuery returns the AQL and bind variables selecting the window of q.
func buildListQuery(collection string, q store.Query) (string, map[string]interface{}) {
	vars := map[string]interface{}{
		"@collection": collection,
		"offset":      q.Offset,
		"limit":       q.Limit,
	}

	attr, ok := sortAttributes[q.Sort.Field]
	if !ok {
		attr = sortAttributes[orgs.SortByScore]
	}
	dir := "DESC"
	if q.Sort.Direction == orgs.SortAsc {
		dir = "ASC"
	}

	var b strings.Builder
	b.WriteString("FOR o IN @@collection\n")
	b.WriteString(filterClause(q.Filter, vars))
	b.WriteString("  SORT o." + attr + " " + dir + ", o.id ASC\n")
	b.WriteString("  LIMIT @offset, @limit\n")
	b.WriteString("  RETURN UNSET(o, \"_id\", \"_key\", \"_rev\")")
	return b.String(), vars
}

// buildTotalsQuery returns the AQL and bind variables aggregating every match of f.
func buildTotalsQuery(collection string, f orgs.Filter) (string, map[string]interface{}) {
	vars := map[string]interface{}{"@collection": collection}

	var b strings.Builder
	b.WriteString("FOR o IN @@collection\n")
	b.WriteString(filterClause(f, vars))
	b.WriteString("  COLLECT AGGREGATE count = COUNT(1), aum = SUM(o.aum), activity = SUM(o.activity)\n")
	b.WriteString("  RETURN { count, aum, activity }")
	return b.String(), vars
}
