// Package area resolves delivery zones and their flat fees. Historical
// orders embed free-text addresses rather than area ids, so resolution is
// always a best-effort name match that degrades to a zero fee and an "N/A"
// label instead of failing the surrounding operation.
package area

import (
	"sort"
	"strings"
)

// Unresolved is the label shown for orders whose zone cannot be determined.
const Unresolved = "N/A"

type Area struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Fee      float64 `json:"fee"`
	IsActive bool    `json:"isActive"`
}

// Directory is a point-in-time snapshot of the active delivery zones, keyed
// case-insensitively by name.
type Directory struct {
	byName map[string]Area
}

func NewDirectory(areas []Area) *Directory {
	byName := make(map[string]Area, len(areas))
	for _, a := range areas {
		if !a.IsActive {
			continue
		}
		byName[strings.ToLower(strings.TrimSpace(a.Name))] = a
	}
	return &Directory{byName: byName}
}

// Fee returns the flat fee for a zone name, 0 when the name does not resolve.
func (d *Directory) Fee(name string) float64 {
	a, ok := d.Resolve(name)
	if !ok {
		return 0
	}
	return a.Fee
}

// All returns the snapshot's zones sorted by name.
func (d *Directory) All() []Area {
	out := make([]Area, 0, len(d.byName))
	for _, a := range d.byName {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *Directory) Resolve(name string) (Area, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == strings.ToLower(Unresolved) {
		return Area{}, false
	}
	a, ok := d.byName[key]
	return a, ok
}

// ExtractFromAddress takes the zone as the substring after the last comma of
// a comma-separated address ("12 Main St, Gulshan" -> "Gulshan").
func ExtractFromAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return Unresolved
	}
	idx := strings.LastIndex(trimmed, ",")
	if idx < 0 {
		return Unresolved
	}
	zone := strings.TrimSpace(trimmed[idx+1:])
	if zone == "" {
		return Unresolved
	}
	return zone
}

// ForOrder resolves the zone label for an order: the explicit area field
// wins, then the address suffix, then "N/A".
func ForOrder(explicitArea, address string) string {
	if zone := strings.TrimSpace(explicitArea); zone != "" {
		return zone
	}
	return ExtractFromAddress(address)
}
