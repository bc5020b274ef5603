package tui

import (
	"net/url"
	"strings"

	"github.com/rshade/orgboard/internal/orgs"
)

// Navigator moves the application to another route.
type Navigator interface {
	Push(path string)
}

// Opener opens a URL outside the dashboard.
type Opener interface {
	Open(url string) error
}

// ProfilePath returns the route of an organisation's profile page.
func ProfilePath(address string) string {
	return "/profile?dao=" + url.QueryEscape(address)
}

// OrganisationURL returns the external URL of an organisation within the app at appURL.
func OrganisationURL(appURL, locator string) string {
	return strings.TrimRight(appURL, "/") + "/#/" + locator
}

// Pager maps page info to next and previous page requests.
type Pager struct {
	info   orgs.PageInfo
	onPage func(direction orgs.PageDirection, cursor string)
}

// NewPager returns a pager for info that reports page changes to onPage.
func NewPager(info orgs.PageInfo, onPage func(orgs.PageDirection, string)) Pager {
	return Pager{info: info, onPage: onPage}
}

// Next requests the page after the end cursor and reports whether one exists.
func (p Pager) Next() bool {
	if !p.info.HasNextPage || p.info.EndCursor == "" {
		return false
	}
	p.onPage(orgs.PageAfter, p.info.EndCursor)
	return true
}

// Prev requests the page before the start cursor and reports whether one exists.
func (p Pager) Prev() bool {
	if !p.info.HasPreviousPage || p.info.StartCursor == "" {
		return false
	}
	p.onPage(orgs.PageBefore, p.info.StartCursor)
	return true
}

// View renders the pagination control.
func (p Pager) View(theme Theme) string {
	prev, next := theme.Subtle.Render("‹ prev"), theme.Subtle.Render("next ›")
	if p.info.HasPreviousPage {
		prev = theme.Accent.Render("‹ prev")
	}
	if p.info.HasNextPage {
		next = theme.Accent.Render("next ›")
	}
	return prev + "  " + next
}
