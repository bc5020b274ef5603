package orgs

import "strings"

// FilterItem is one selectable choice of a list filter. A single label may stand for
// several values, e.g. every deployed version of a template kit.
type FilterItem struct {
	Label string
	Value []string
}

// Kits returns the catalogue of organisation template kits and the factory addresses
// each one has been deployed from.
func Kits() []FilterItem {
	return []FilterItem{
		{
			Label: "Company",
			Value: []string{
				"0x705Cd9a00b87Bb019a87beEB9a50334219aC4444",
				"0x7f3ed10366826a1227025445D4f4e3e14BBfc91d",
				"0xd737632caC4d039C9B0EEcc94C12267407a271b5",
			},
		},
		{
			Label: "Multisig",
			Value: []string{
				"0x41bbaf498226b68415f1C78ED541c45A18fd7696",
				"0x87aa2980dde7d2D4e57191f16BB57cF80bf6E5A6",
			},
		},
		{Label: "Membership", Value: []string{"0x67430642C0c3B5E6538049B9E9eE719f2a4BeE7c"}},
		{Label: "Open Enterprise", Value: []string{"0xc54c5dB63aB0E79FBb9555373B969093dEb17859"}},
		{Label: "Reputation", Value: []string{"0x3a06A6544e48708142508D9042f94DDdA769d04F"}},
		{Label: "Fundraising", Value: []string{"0xd4bc1aFD46e744F1834cad01B2262d095DCB6C9B"}},
		{Label: "Dandelion", Value: []string{"0xbc2A863ef2B96d454aC7790D5A9E8cFfd8EccBa8"}},
	}
}

// KitByLabel looks up a kit by its label, ignoring case and surrounding whitespace.
func KitByLabel(label string) (FilterItem, bool) {
	want := strings.TrimSpace(label)
	for _, k := range Kits() {
		if strings.EqualFold(k.Label, want) {
			return k, true
		}
	}
	return FilterItem{}, false
}

// KitLabel returns the label of the kit a factory address belongs to, or "" when the
// address is not in the catalogue. Addresses compare case-insensitively.
func KitLabel(address string) string {
	for _, k := range Kits() {
		for _, v := range k.Value {
			if strings.EqualFold(v, address) {
				return k.Label
			}
		}
	}
	return ""
}
