package normalize

import (
	"math"
	"testing"

	"posbackend/entity"
)

type mapCatalog map[string]struct {
	name  string
	price float64
}

func (c mapCatalog) Lookup(id string) (string, float64, bool) {
	e, ok := c[id]
	return e.name, e.price, ok
}

func TestNormalizeTotality(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{},
		{"items": 7},
		{"items": "not an array"},
		{"customer": map[string]any{}, "table": []any{"wrong", "shape"}},
		{"bills": "also wrong", "total": math.NaN()},
		{"orderItems": []any{nil, "garbage", 42, map[string]any{}}},
		{"customerDetails": map[string]any{"name": map[string]any{"deeply": "wrong"}}},
	}

	for i, raw := range inputs {
		rec := Normalize(raw, nil) // must not panic
		if rec.CustomerName == "" {
			t.Errorf("input %d: customerName empty", i)
		}
		if rec.TableNumber == "" {
			t.Errorf("input %d: tableNumber empty", i)
		}
		if rec.Status == "" {
			t.Errorf("input %d: status empty", i)
		}
		if rec.Items == nil {
			t.Errorf("input %d: items nil", i)
		}
		if math.IsNaN(rec.Total) || math.IsInf(rec.Total, 0) {
			t.Errorf("input %d: total not finite: %v", i, rec.Total)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	rec := Normalize(map[string]any{}, nil)
	if rec.CustomerName != "Customer" {
		t.Errorf("want default customer name, got %q", rec.CustomerName)
	}
	if rec.CustomerPhone != "" {
		t.Errorf("want empty phone, got %q", rec.CustomerPhone)
	}
	if rec.TableNumber != "N/A" {
		t.Errorf("want N/A table, got %q", rec.TableNumber)
	}
	if rec.Status != entity.StatusPending {
		t.Errorf("want Pending, got %q", rec.Status)
	}
	if rec.Ambiguous != 3 {
		t.Errorf("three fields fell to defaults, got Ambiguous=%d", rec.Ambiguous)
	}
}

func TestCustomerNamePrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"plain string wins", map[string]any{
			"customer":        "Jane",
			"customerDetails": map[string]any{"name": "Not Jane"},
		}, "Jane"},
		{"customer object name", map[string]any{
			"customer":     map[string]any{"name": "Amit"},
			"customerName": "Not Amit",
		}, "Amit"},
		{"customerDetails next", map[string]any{
			"customerDetails": map[string]any{"name": "Priya"},
			"customerName":    "Not Priya",
		}, "Priya"},
		{"flat customerName last", map[string]any{"customerName": "Dev"}, "Dev"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw, nil).CustomerName; got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTableNumberPrecedence(t *testing.T) {
	raw := map[string]any{
		"table":       map[string]any{"tableNo": "T7"},
		"tableNumber": "T9",
	}
	if got := Normalize(raw, nil).TableNumber; got != "T7" {
		t.Fatalf("want T7, got %q", got)
	}
	// numeric table numbers are rendered, not dropped
	if got := Normalize(map[string]any{"tableNo": float64(4)}, nil).TableNumber; got != "4" {
		t.Fatalf("want 4, got %q", got)
	}
}

func TestStatusTranslation(t *testing.T) {
	cases := map[string]string{
		"preparing":   entity.StatusInProgress,
		"In Progress": entity.StatusInProgress,
		"Ready":       entity.StatusReady,
		"paid":        entity.StatusCompleted,
		"canceled":    entity.StatusCancelled,
		"placed":      entity.StatusPending,
	}
	for in, want := range cases {
		if got := Normalize(map[string]any{"status": in}, nil).Status; got != want {
			t.Errorf("status %q: want %s, got %s", in, want, got)
		}
	}

	// fallback chain: orderStatus, then paymentStatus
	raw := map[string]any{"orderStatus": "preparing", "paymentStatus": "paid"}
	if got := Normalize(raw, nil).Status; got != entity.StatusInProgress {
		t.Errorf("orderStatus must win over paymentStatus, got %s", got)
	}
}

func TestItemsSourceKeys(t *testing.T) {
	line := map[string]any{"name": "Chai", "price": 75.0, "qty": 1}
	for _, key := range []string{"items", "orderItems", "order_items", "cart", "products", "itemsList"} {
		rec := Normalize(map[string]any{key: []any{line}}, nil)
		if len(rec.Items) != 1 || rec.Items[0].Name != "Chai" {
			t.Errorf("key %s: items not extracted: %+v", key, rec.Items)
		}
	}
}

func TestItemsObjectCoercedToArray(t *testing.T) {
	raw := map[string]any{
		"items": map[string]any{
			"a": map[string]any{"name": "Chai", "price": 75.0, "qty": 2},
			"b": map[string]any{"name": "Naan", "price": 60.0, "qty": 1},
		},
	}
	rec := Normalize(raw, nil)
	if len(rec.Items) != 2 {
		t.Fatalf("object values must coerce to an array, got %d items", len(rec.Items))
	}
}

func TestItemsNumberTreatedAsEmpty(t *testing.T) {
	rec := Normalize(map[string]any{"items": float64(3)}, nil)
	if len(rec.Items) != 0 {
		t.Fatalf("numeric items must mean empty, got %+v", rec.Items)
	}
}

func TestItemsFirstPresentKeyWins(t *testing.T) {
	line := []any{map[string]any{"name": "Chai", "price": 75, "qty": 1}}

	// A numeric value under an earlier key terminates the search.
	rec := Normalize(map[string]any{"items": float64(3), "orderItems": line}, nil)
	if len(rec.Items) != 0 {
		t.Fatalf("numeric items must not fall through to a later key, got %+v", rec.Items)
	}

	// A null value counts as absent.
	rec = Normalize(map[string]any{"items": nil, "orderItems": line}, nil)
	if len(rec.Items) != 1 || rec.Items[0].Name != "Chai" {
		t.Fatalf("null items must fall through to the next key, got %+v", rec.Items)
	}
}

func TestTotalRecomputedWithCatalog(t *testing.T) {
	catalog := mapCatalog{"x": {name: "Soda", price: 50}}
	raw := map[string]any{
		"customer": "Jane",
		"total":    float64(0),
		"items":    []any{map[string]any{"id": "x", "qty": 2}},
	}

	rec := Normalize(raw, catalog)
	if rec.CustomerName != "Jane" {
		t.Errorf("want Jane, got %q", rec.CustomerName)
	}
	if rec.Total != 100 {
		t.Errorf("want recomputed total 100, got %v", rec.Total)
	}
	if len(rec.Items) != 1 || rec.Items[0].Name != "Soda" || rec.Items[0].UnitPrice != 50 {
		t.Errorf("catalog lookup failed: %+v", rec.Items)
	}
}

func TestBareItemWithoutCatalogMatch(t *testing.T) {
	rec := Normalize(map[string]any{
		"items": []any{map[string]any{"id": "unknown", "qty": 3}},
	}, mapCatalog{})
	if len(rec.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(rec.Items))
	}
	if rec.Items[0].Name != "Item" || rec.Items[0].UnitPrice != 0 {
		t.Errorf("unmatched reference must fall back to Item/0: %+v", rec.Items[0])
	}
}

func TestTotalPrecedence(t *testing.T) {
	raw := map[string]any{
		"bills":      map[string]any{"totalWithTax": 210.0},
		"grandTotal": 999.0,
	}
	if got := Normalize(raw, nil).Total; got != 210 {
		t.Fatalf("bills.totalWithTax must win over grandTotal, got %v", got)
	}

	if got := Normalize(map[string]any{"grandTotal": 42.0}, nil).Total; got != 42 {
		t.Fatalf("want grandTotal fallback 42, got %v", got)
	}
}
