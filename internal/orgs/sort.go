package orgs

import (
	"errors"
	"fmt"
	"strings"
)

// SortDirection is the order of a sort: ascending or descending.
type SortDirection string

const (
	// SortAsc sorts smallest first.
	SortAsc SortDirection = "ASC"
	// SortDesc sorts largest first.
	SortDesc SortDirection = "DESC"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Arrow returns the column marker for the direction.
func (d SortDirection) Arrow() string {
	if d == SortAsc {
		return "▲"
	}
	return "▼"
}

// SortField is a sortable column of the organisations connection.
type SortField string

// Sortable fields, in column order.
const (
	SortByENS       SortField = "ens"
	SortByAUM       SortField = "aum"
	SortByActivity  SortField = "activity"
	SortByScore     SortField = "score"
	SortByCreatedAt SortField = "createdAt"
)

// Sort parsing errors.
var (
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'aum:desc')")
)

// SortFields returns all sortable fields in column order.
func SortFields() []SortField {
	return []SortField{SortByENS, SortByAUM, SortByActivity, SortByScore, SortByCreatedAt}
}

// Label returns the column heading for the field.
func (f SortField) Label() string {
	switch f {
	case SortByENS:
		return "Organisation"
	case SortByAUM:
		return "AUM"
	case SortByActivity:
		return "Activity (90 days)"
	case SortByScore:
		return "Score"
	case SortByCreatedAt:
		return "Created"
	default:
		return string(f)
	}
}

// sortFieldAliases maps lower-cased user input onto sort fields.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var sortFieldAliases = map[string]SortField{
	"ens":          SortByENS,
	"organisation": SortByENS,
	"organization": SortByENS,
	"org":          SortByENS,
	"name":         SortByENS,
	"aum":          SortByAUM,
	"activity":     SortByActivity,
	"score":        SortByScore,
	"createdat":    SortByCreatedAt,
	"created":      SortByCreatedAt,
}

// ParseSortField maps user text (case-insensitive, with a few aliases) onto a SortField.
func ParseSortField(s string) (SortField, error) {
	if f, ok := sortFieldAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
}

// ParseSortDirection maps "asc"/"desc" in any case onto a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// SortSpec is the single active sort of the listing.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is the sort the listing opens with: highest score first.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByScore, Direction: SortDesc}
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSortSpec parses "field" or "field:order". The order defaults to descending.
func ParseSortSpec(s string) (SortSpec, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultSort(), nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > sortPartsMax {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, s)
	}

	field, err := ParseSortField(parts[0])
	if err != nil {
		return SortSpec{}, err
	}

	dir := SortDesc
	if len(parts) == sortPartsMax {
		if dir, err = ParseSortDirection(parts[1]); err != nil {
			return SortSpec{}, err
		}
	}

	return SortSpec{Field: field, Direction: dir}, nil
}

// Variables returns the GraphQL sort binding: the field name keyed to its direction.
func (s SortSpec) Variables() map[string]any {
	return map[string]any{string(s.Field): string(s.Direction)}
}

// String renders the spec in the form accepted by ParseSortSpec.
func (s SortSpec) String() string {
	return string(s.Field) + ":" + strings.ToLower(string(s.Direction))
}
