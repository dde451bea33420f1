package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"posbackend/entity"
	"posbackend/remote"
	"posbackend/repository"
)

func listRemote(t *testing.T, payload any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncOnceIngestsRemoteOrders(t *testing.T) {
	db := testDB(t)
	seedMenu(t, db, menuItem("Soda", 50))

	srv := listRemote(t, map[string]any{
		"data": map[string]any{
			"orders": []any{
				map[string]any{
					"id":              "r-1",
					"customerDetails": map[string]any{"name": "Jane"},
					"table":           map[string]any{"tableNo": "T3"},
					"orderStatus":     "preparing",
					"items": []any{
						map[string]any{"name": "Soda", "price": 50, "qty": 2},
					},
					"bills": map[string]any{"totalWithTax": 105.0},
				},
			},
		},
	})

	repo := repository.NewOrderRepository(db)
	rc := remote.NewClient(srv.URL, "", time.Second)
	svc := NewSyncService(repo, repository.NewMenuRepository(db), rc, 10*time.Millisecond)

	svc.SyncOnce(context.Background())

	o, err := repo.GetByOrderKey("r-1")
	if err != nil {
		t.Fatalf("remote order not ingested: %v", err)
	}
	if o.Origin != entity.OriginRemote || !o.Synced {
		t.Errorf("origin must be tagged remote+synced, got %s/%v", o.Origin, o.Synced)
	}
	if o.CustomerName != "Jane" || o.TableNo != "T3" {
		t.Errorf("normalization lost fields: %+v", o)
	}
	if o.Status != entity.StatusInProgress {
		t.Errorf("status must be canonical, got %s", o.Status)
	}
	if o.Total != 105 {
		t.Errorf("want total 105, got %v", o.Total)
	}
}

func TestSyncNeverResurrectsNewerLocalState(t *testing.T) {
	db := testDB(t)
	repo := repository.NewOrderRepository(db)

	// the terminal just cancelled this order
	local := &entity.Order{
		OrderKey: "r-9",
		Origin:   entity.OriginRemote,
		Status:   entity.StatusCancelled,
		Total:    100,
		PlacedAt: time.Now(),
	}
	if err := db.Create(local).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// a server snapshot taken before the cancellation
	staleSeenAt := time.Now().Add(-time.Minute)
	stale := &entity.Order{
		OrderKey: "r-9",
		Origin:   entity.OriginRemote,
		Status:   entity.StatusPending,
		Total:    100,
	}
	changed, err := repo.UpsertRemote(stale, staleSeenAt)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if changed {
		t.Fatalf("stale snapshot must not overwrite newer local state")
	}

	got, _ := repo.GetByOrderKey("r-9")
	if got.Status != entity.StatusCancelled {
		t.Fatalf("cancelled order resurrected to %s", got.Status)
	}
}

func TestSyncRunStopsOnCancel(t *testing.T) {
	db := testDB(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]any{})
	}))
	t.Cleanup(srv.Close)

	rc := remote.NewClient(srv.URL, "", time.Second)
	svc := NewSyncService(repository.NewOrderRepository(db), repository.NewMenuRepository(db), rc, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != settled {
		t.Fatal("poller kept fetching after cancellation")
	}
}

func TestSyncResubmitsLocallyPlacedOrders(t *testing.T) {
	db := testDB(t)
	repo := repository.NewOrderRepository(db)

	local := &entity.Order{
		OrderKey: "local-abc",
		Origin:   entity.OriginLocal,
		Synced:   false,
		Status:   entity.StatusPending,
		Total:    150,
		PlacedAt: time.Now(),
		Items:    []entity.OrderItem{{Name: "Soda", UnitPrice: 75, Qty: 2}},
	}
	if err := db.Create(local).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	var submitted atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			submitted.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"id": "srv-9"})
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	t.Cleanup(srv.Close)

	rc := remote.NewClient(srv.URL, "", time.Second)
	svc := NewSyncService(repo, repository.NewMenuRepository(db), rc, 10*time.Millisecond)

	svc.SyncOnce(context.Background())

	if submitted.Load() != 1 {
		t.Fatalf("want exactly one resubmission, got %d", submitted.Load())
	}
	o, err := repo.GetByOrderKey("srv-9")
	if err != nil {
		t.Fatalf("resubmitted order must carry the server key: %v", err)
	}
	if !o.Synced {
		t.Error("resubmitted order must be marked synced")
	}
	if o.Origin != entity.OriginLocal {
		t.Errorf("origin must stay local, got %s", o.Origin)
	}
	if _, err := repo.GetByOrderKey("local-abc"); err == nil {
		t.Error("fallback key must be replaced, not duplicated")
	}

	// A second run must not submit again.
	svc.SyncOnce(context.Background())
	if submitted.Load() != 1 {
		t.Fatalf("synced order resubmitted, got %d submissions", submitted.Load())
	}
}

func TestSyncBareItemReferenceResolvesAgainstCatalog(t *testing.T) {
	db := testDB(t)
	menu := seedMenu(t, db, menuItem("Soda", 50))

	srv := listRemote(t, []any{
		map[string]any{
			"id":       "r-2",
			"customer": "Jane",
			"total":    0,
			"items": []any{
				map[string]any{"id": float64(menu[0].ID), "qty": 2},
			},
		},
	})

	repo := repository.NewOrderRepository(db)
	rc := remote.NewClient(srv.URL, "", time.Second)
	svc := NewSyncService(repo, repository.NewMenuRepository(db), rc, 10*time.Millisecond)

	svc.SyncOnce(context.Background())

	o, err := repo.GetByOrderKey("r-2")
	if err != nil {
		t.Fatalf("not ingested: %v", err)
	}
	if o.Total != 100 {
		t.Errorf("zero total must be recomputed from resolved items, got %v", o.Total)
	}
	if len(o.Items) != 1 || o.Items[0].Name != "Soda" {
		t.Errorf("bare reference must resolve against the menu: %+v", o.Items)
	}
}
