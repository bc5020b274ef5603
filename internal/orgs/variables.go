package orgs

// PageDirection says which side of a cursor the requested page lies on.
type PageDirection string

const (
	// PageBefore requests the page preceding the cursor.
	PageBefore PageDirection = "before"
	// PageAfter requests the page following the cursor.
	PageAfter PageDirection = "after"
)

// PageDirective selects a page. The zero value selects the first page.
type PageDirective struct {
	Direction PageDirection
	Cursor    string
}

// FirstPage returns the directive for the first page.
func FirstPage() PageDirective {
	return PageDirective{}
}

// IsFirst reports whether the directive selects the first page. A direction without a
// cursor also selects the first page.
func (p PageDirective) IsFirst() bool {
	return p.Cursor == "" || (p.Direction != PageBefore && p.Direction != PageAfter)
}

// Variables is the full parameter set of one organisations query.
type Variables struct {
	Sort   SortSpec
	Filter Filter
	Page   PageDirective
}

// Map returns the variables as the GraphQL variables object. Unset optional bindings
// are omitted rather than sent as null.
func (v Variables) Map() map[string]any {
	out := map[string]any{"sort": v.Sort.Variables()}
	if f := v.Filter.Variables(); f != nil {
		out["filter"] = f
	}
	if !v.Page.IsFirst() {
		out[string(v.Page.Direction)] = v.Page.Cursor
	}
	return out
}

// Equal reports whether two variable sets select the same page of the same listing.
func (v Variables) Equal(o Variables) bool {
	return v.Sort == o.Sort && v.Page == o.Page && v.Filter.Equal(o.Filter)
}
