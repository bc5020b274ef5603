package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/orgboard/internal/orgs"
)

// Flag names.
const (
	FlagAfter  = "after"
	FlagBefore = "before"
)

// Common validation errors.
var (
	ErrMixedCursors = errors.New("--after and --before are mutually exclusive")
	ErrBlankCursor  = errors.New("cursor cannot be blank")
)

// Params holds the cursor pagination flags. The zero value selects the first page.
type Params struct {
	// After requests the page following this cursor.
	After string

	// Before requests the page preceding this cursor.
	Before string
}

// AddFlags registers the pagination flags on cmd, bound to p.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.After, FlagAfter, "", "show the page after this cursor")
	cmd.Flags().StringVar(&p.Before, FlagBefore, "", "show the page before this cursor")
	cmd.MarkFlagsMutuallyExclusive(FlagAfter, FlagBefore)
}

// Validate checks that at most one cursor is set and that a set cursor is not blank.
func (p Params) Validate() error {
	if p.After != "" && p.Before != "" {
		return ErrMixedCursors
	}
	for name, v := range map[string]string{FlagAfter: p.After, FlagBefore: p.Before} {
		if v != "" && strings.TrimSpace(v) == "" {
			return fmt.Errorf("--%s: %w", name, ErrBlankCursor)
		}
	}
	return nil
}

// IsEnabled returns true if a cursor was given.
func (p Params) IsEnabled() bool {
	return p.After != "" || p.Before != ""
}

// Directive returns the page directive selected by the flags.
func (p Params) Directive() orgs.PageDirective {
	switch {
	case p.After != "":
		return orgs.PageDirective{Direction: orgs.PageAfter, Cursor: strings.TrimSpace(p.After)}
	case p.Before != "":
		return orgs.PageDirective{Direction: orgs.PageBefore, Cursor: strings.TrimSpace(p.Before)}
	default:
		return orgs.FirstPage()
	}
}
