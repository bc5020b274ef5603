package orgs

import (
	"strings"
	"time"
)

// NoDescription and NoLinks are the placeholders shown in a profile expansion when the
// profile carries no description or no links.
const (
	NoDescription = "No description available."
	NoLinks       = "No links available."
)

// Profile is the self-declared profile an organisation may publish.
type Profile struct {
	Name        string   `json:"name"        yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon"        yaml:"icon"`
	Links       []string `json:"links"       yaml:"links"`
}

// HasDescription reports whether the profile has a real (non-placeholder) description.
func (p *Profile) HasDescription() bool {
	if p == nil {
		return false
	}
	d := strings.TrimSpace(p.Description)
	return d != "" && d != NoDescription
}

// IsProfileEmpty reports whether a profile has nothing worth expanding: no
// description and no links. A nil profile is empty.
func IsProfileEmpty(p *Profile) bool {
	if p == nil {
		return true
	}
	return !p.HasDescription() && len(p.Links) == 0
}

// Organisation is a single node of the organisations connection. Records are
// read-only and live only as long as the page that carried them.
type Organisation struct {
	ID        string    `json:"id"        yaml:"id"`
	Address   string    `json:"address"   yaml:"address"`
	ENS       string    `json:"ens"       yaml:"ens"`
	Kit       string    `json:"kit"       yaml:"kit"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	AUM       float64   `json:"aum"       yaml:"aum"`
	Activity  int64     `json:"activity"  yaml:"activity"`
	Score     float64   `json:"score"     yaml:"score"`
	Profile   *Profile  `json:"profile"   yaml:"profile"`
}

// DisplayName returns the name used to identify the organisation: its profile name when
// the profile has both a name and an icon, otherwise its ENS name, otherwise its address.
func (o Organisation) DisplayName() string {
	if o.Profile != nil && o.Profile.Name != "" && o.Profile.Icon != "" {
		return o.Profile.Name
	}
	if o.ENS != "" {
		return o.ENS
	}
	return o.Address
}

// Locator returns the identifier used in external organisation URLs: the ENS name when
// set, otherwise the address.
func (o Organisation) Locator() string {
	if o.ENS != "" {
		return o.ENS
	}
	return o.Address
}

// PageInfo carries the cursors bounding a page and whether more pages exist on either side.
type PageInfo struct {
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
}

// Connection is one page of organisations plus aggregates computed over the whole
// filtered result set, not just the page.
type Connection struct {
	Nodes         []Organisation `json:"nodes"`
	PageInfo      PageInfo       `json:"pageInfo"`
	TotalCount    int            `json:"totalCount"`
	TotalAUM      float64        `json:"totalAUM"`
	TotalActivity float64        `json:"totalActivity"`
}
