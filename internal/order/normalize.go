package order

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/ZainJ5/tipuburger-server/internal/legacy"
)

// ErrItemsPayload is the whole-request failure for an unparseable checkout
// items payload. Order creation is all-or-nothing; a bad items blob never
// produces a partial order.
var ErrItemsPayload = errors.New("Failed to parse order items")

// ParseItemsJSON decodes the serialized items field of a checkout request
// and normalizes every entry.
func ParseItemsJSON(payload []byte) ([]Item, error) {
	var raw []map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, ErrItemsPayload
	}
	return NormalizeItems(raw), nil
}

// NormalizeItems folds every submitted item shape into the canonical Item.
// Three generations of clients are in the wild: structured
// selectedVariation/selectedExtras/selectedSideOrders, the older
// modifications array, and the flat type/price form. Modifications are
// applied last and overwrite the structured fields when both are present.
func NormalizeItems(raw []map[string]any) []Item {
	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		items = append(items, normalizeItem(entry))
	}
	return items
}

func normalizeItem(raw map[string]any) Item {
	item := Item{
		ID:                  resolveItemID(raw),
		Title:               firstString(raw, "title", "name"),
		Price:               legacy.Number(raw["price"]),
		Quantity:            int(legacy.Number(raw["quantity"])),
		ImageURL:            firstString(raw, "imageUrl", "image"),
		SpecialInstructions: firstString(raw, "specialInstructions"),
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if variation, ok := raw["selectedVariation"].(map[string]any); ok {
		item.SelectedVariation = &Variation{
			Name:  legacy.String(variation["name"]),
			Price: legacy.Number(variation["price"]),
		}
	} else if flatType := firstString(raw, "type"); flatType != "" {
		// Oldest clients sent a bare type string with the variation price
		// already folded into the item price.
		item.SelectedVariation = &Variation{Name: flatType, Price: item.Price}
	}

	if extras := entryList(raw["selectedExtras"]); len(extras) > 0 {
		item.SelectedExtras = normalizeExtras(extras)
	}
	if sides := entryList(raw["selectedSideOrders"]); len(sides) > 0 {
		item.SelectedSideOrders = normalizeSideOrders(sides)
	}

	applyModifications(&item, entryList(raw["modifications"]))

	return item
}

// applyModifications folds the legacy modifications array into the canonical
// fields. Entries overwrite whatever the structured fields carried.
func applyModifications(item *Item, mods []map[string]any) {
	for _, mod := range mods {
		entries := entryList(mod["items"])
		switch strings.ToLower(firstString(mod, "type")) {
		case "variation":
			if len(entries) > 0 {
				item.SelectedVariation = &Variation{
					Name:  legacy.String(entries[0]["name"]),
					Price: legacy.Number(entries[0]["price"]),
				}
			}
		case "extras":
			item.SelectedExtras = normalizeExtras(entries)
		case "sideorders":
			item.SelectedSideOrders = normalizeSideOrders(entries)
		}
	}
}

func normalizeExtras(entries []map[string]any) []Extra {
	extras := make([]Extra, 0, len(entries))
	for _, entry := range entries {
		extras = append(extras, Extra{
			Name:  legacy.String(entry["name"]),
			Price: legacy.Number(entry["price"]),
		})
	}
	return extras
}

func normalizeSideOrders(entries []map[string]any) []SideOrder {
	sides := make([]SideOrder, 0, len(entries))
	for _, entry := range entries {
		side := SideOrder{
			Name:     legacy.String(entry["name"]),
			Price:    legacy.Number(entry["price"]),
			Category: strings.ToLower(legacy.String(entry["category"])),
		}
		switch side.Category {
		case "drinks", "appetizers", "desserts":
		default:
			side.Category = "other"
		}
		sides = append(sides, side)
	}
	return sides
}

// resolveItemID walks the identity fallback chain: explicit id, nested
// _id/$oid, then the menu-item portion of a composite cartItemId
// ("<menuId>-<timestamp>").
func resolveItemID(raw map[string]any) string {
	if id := legacy.String(raw["id"]); id != "" {
		return id
	}
	if id := legacy.String(raw["_id"]); id != "" {
		return id
	}
	if cartID := legacy.String(raw["cartItemId"]); cartID != "" {
		if idx := strings.Index(cartID, "-"); idx > 0 {
			return cartID[:idx]
		}
		return cartID
	}
	return ""
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(legacy.String(raw[key])); value != "" {
			return value
		}
	}
	return ""
}

func entryList(raw any) []map[string]any {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	entries := make([]map[string]any, 0, len(list))
	for _, element := range list {
		if entry, ok := element.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
