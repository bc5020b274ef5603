package tui

import "github.com/rshade/orgboard/internal/orgs"

// Key bindings.
const (
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keyEnter   = "enter"
	keyEsc     = "esc"
	keyNext    = "n"
	keyPrev    = "p"
	keyFilter  = "f"
	keyClear   = "x"
	keyView    = "v"
	keyOpen    = "o"
	keyRefresh = "r"
)

// sortKeys maps the number keys to the column they sort by.
//
//nolint:gochecknoglobals // Static key table.
var sortKeys = map[string]orgs.SortField{
	"1": orgs.SortByENS,
	"2": orgs.SortByAUM,
	"3": orgs.SortByActivity,
	"4": orgs.SortByScore,
	"5": orgs.SortByCreatedAt,
}

const helpText = "1-5 sort  n/p page  f filter  x clear  enter expand  v profile  o open  r refresh  q quit"
