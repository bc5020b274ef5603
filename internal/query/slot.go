package query

import "github.com/rshade/orgboard/internal/orgs"

// Slot holds the last successfully fetched page so it can stay on screen while the
// next page loads. It holds exactly one entry; storing replaces it.
type Slot struct {
	conn *orgs.Connection
	vars orgs.Variables
}

// Store replaces the slot contents.
func (s *Slot) Store(vars orgs.Variables, conn *orgs.Connection) {
	s.conn = conn
	s.vars = vars
}

// Load returns the stored page, if any.
func (s *Slot) Load() (*orgs.Connection, bool) {
	return s.conn, s.conn != nil
}

// Stale reports whether the stored page was fetched under a different sort or filter
// than want. Its cursors are only valid for the listing they came from, so a stale page
// must not drive pagination. The page directive is ignored. An empty slot is stale.
func (s *Slot) Stale(want orgs.Variables) bool {
	return s.conn == nil || s.vars.Sort != want.Sort || !s.vars.Filter.Equal(want.Filter)
}
