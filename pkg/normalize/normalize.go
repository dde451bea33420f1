// Package normalize maps order-shaped records of unknown origin into one
// canonical shape. Older terminals and the upstream service disagree on field
// names (customer vs customerDetails.name, tableNo vs table.tableNo, total vs
// bills.totalWithTax); everything that lists orders reads through here instead
// of re-guessing the shape per view.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"posbackend/entity"
)

// Catalog resolves bare item references (id only, no denormalized snapshot)
// to a display name and price. A nil catalog is valid and resolves nothing.
type Catalog interface {
	Lookup(id string) (name string, price float64, ok bool)
}

// Item is one normalized order line.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Qty       int     `json:"qty"`
}

// Record is the canonical read shape. Every field is always populated, with
// defaults when the input gave nothing usable.
type Record struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	TableNumber   string  `json:"tableNumber"`
	Status        string  `json:"status"`
	Items         []Item  `json:"items"`
	Total         float64 `json:"total"`

	// Ambiguous counts required fields that fell through to their default.
	// Non-zero values are worth logging: they mean upstream shape drift.
	Ambiguous int `json:"-"`
}

// Normalize never fails: any input, including nil, yields a fully populated
// Record.
func Normalize(raw map[string]any, catalog Catalog) Record {
	var rec Record

	rec.CustomerName = customerName(raw, &rec.Ambiguous)
	rec.CustomerPhone = customerPhone(raw)
	rec.TableNumber = tableNumber(raw, &rec.Ambiguous)
	rec.Status = status(raw, &rec.Ambiguous)
	rec.Items = items(raw, catalog)

	rec.Total = total(raw)
	if rec.Total == 0 {
		for _, it := range rec.Items {
			rec.Total += it.UnitPrice * float64(it.Qty)
		}
	}
	return rec
}

func customerName(raw map[string]any, ambiguous *int) string {
	if s, ok := raw["customer"].(string); ok && s != "" {
		return s
	}
	if m, ok := raw["customer"].(map[string]any); ok {
		if s := asString(m["name"]); s != "" {
			return s
		}
	}
	if m, ok := raw["customerDetails"].(map[string]any); ok {
		if s := asString(m["name"]); s != "" {
			return s
		}
	}
	if s := asString(raw["customerName"]); s != "" {
		return s
	}
	*ambiguous++
	return "Customer"
}

func customerPhone(raw map[string]any) string {
	if s := asString(raw["customerPhone"]); s != "" {
		return s
	}
	if m, ok := raw["customerDetails"].(map[string]any); ok {
		if s := asString(m["phone"]); s != "" {
			return s
		}
	}
	if m, ok := raw["customer"].(map[string]any); ok {
		if s := asString(m["phone"]); s != "" {
			return s
		}
	}
	return ""
}

func tableNumber(raw map[string]any, ambiguous *int) string {
	if s := asString(raw["tableNo"]); s != "" {
		return s
	}
	if m, ok := raw["table"].(map[string]any); ok {
		if s := asString(m["tableNo"]); s != "" {
			return s
		}
	}
	if s := asString(raw["tableNumber"]); s != "" {
		return s
	}
	*ambiguous++
	return "N/A"
}

func status(raw map[string]any, ambiguous *int) string {
	for _, key := range []string{"status", "orderStatus", "paymentStatus"} {
		if s := asString(raw[key]); s != "" {
			return CanonicalStatus(s)
		}
	}
	*ambiguous++
	return entity.StatusPending
}

// CanonicalStatus translates the spellings seen in the wild to the canonical
// enumeration. Unknown spellings pass through title-cased rather than being
// dropped, so nothing silently turns into Pending.
func CanonicalStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "placed", "unpaid":
		return entity.StatusPending
	case "inprogress", "in progress", "in_progress", "preparing", "cooking", "accepted":
		return entity.StatusInProgress
	case "ready", "prepared":
		return entity.StatusReady
	case "completed", "complete", "done", "paid", "delivered":
		return entity.StatusCompleted
	case "cancelled", "canceled", "rejected":
		return entity.StatusCancelled
	}
	return strings.TrimSpace(s)
}

func items(raw map[string]any, catalog Catalog) []Item {
	var arr []any
	for _, key := range []string{"items", "orderItems", "order_items", "cart", "products", "itemsList"} {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		// The first key present decides; a later key never overrides it,
		// even when the value is unusable (a number means no items).
		switch vv := v.(type) {
		case []any:
			arr = vv
		case map[string]any:
			// Some producers store the line map keyed by item id; take the
			// values.
			arr = make([]any, 0, len(vv))
			for _, e := range vv {
				arr = append(arr, e)
			}
		}
		break
	}

	out := make([]Item, 0, len(arr))
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, resolveItem(m, catalog))
	}
	return out
}

func resolveItem(m map[string]any, catalog Catalog) Item {
	it := Item{
		ID:        firstString(m, "id", "itemId", "menuId", "_id"),
		Name:      firstString(m, "name", "itemName", "menuName", "title"),
		UnitPrice: firstNumber(m, "unitPrice", "price", "pricePerQuantity"),
		Qty:       int(firstNumber(m, "qty", "quantity", "count")),
	}
	if it.Qty <= 0 {
		it.Qty = 1
	}

	// A line with neither name nor price is a bare reference; try the menu
	// catalog before falling back to a renderable placeholder.
	if it.Name == "" && it.UnitPrice == 0 {
		if catalog != nil && it.ID != "" {
			if name, price, ok := catalog.Lookup(it.ID); ok {
				it.Name, it.UnitPrice = name, price
				return it
			}
		}
		it.Name = "Item"
	}
	if it.Name == "" {
		it.Name = "Item"
	}
	return it
}

func total(raw map[string]any) float64 {
	if v := asNumber(raw["total"]); v != 0 {
		return v
	}
	if m, ok := raw["bills"].(map[string]any); ok {
		if v := asNumber(m["totalWithTax"]); v != 0 {
			return v
		}
	}
	return asNumber(raw["grandTotal"])
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f := asNumber(v); f != 0 {
				return f
			}
		}
	}
	return 0
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
