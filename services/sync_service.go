package services

import (
	"context"
	"strconv"
	"time"

	"posbackend/entity"
	"posbackend/metrics"
	"posbackend/pkg/normalize"
	"posbackend/remote"
	"posbackend/repository"

	log "github.com/sirupsen/logrus"
)

// SyncService periodically pulls the upstream order list into the local store
// so list views see one merged, canonical set regardless of origin.
type SyncService struct {
	Repo     *repository.OrderRepository
	Catalog  normalize.Catalog
	Remote   *remote.Client
	Interval time.Duration
}

func NewSyncService(repo *repository.OrderRepository, catalog normalize.Catalog, rc *remote.Client, interval time.Duration) *SyncService {
	return &SyncService{Repo: repo, Catalog: catalog, Remote: rc, Interval: interval}
}

// Run polls until ctx is cancelled. Cancellation is a clean stop, not an
// error: the owning process is shutting down.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("order sync stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				log.Info("order sync stopped")
				return
			}
			s.SyncOnce(ctx)
		}
	}
}

// SyncOnce pushes deferred local orders, then fetches and merges one server
// snapshot. Merge rule is last-write-wins by timestamp: a server snapshot
// never overwrites strictly newer local state (it must not resurrect a
// just-cancelled order).
func (s *SyncService) SyncOnce(ctx context.Context) {
	s.pushLocal(ctx)

	if ctx.Err() != nil {
		return
	}

	fetchedAt := time.Now()

	raws, err := s.Remote.FetchOrders(ctx)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("error").Inc()
		log.Warnf("order sync fetch failed: %v", err)
		return
	}

	merged := 0
	for _, raw := range raws {
		key := recordKey(raw)
		if key == "" {
			continue
		}

		rec := normalize.Normalize(raw, s.Catalog)
		if rec.Ambiguous > 0 {
			metrics.NormalizerAmbiguous.Inc()
			log.WithFields(log.Fields{
				"order_key": key,
				"fields":    rec.Ambiguous,
			}).Debug("order record needed default fields")
		}

		changed, err := s.Repo.UpsertRemote(toEntity(key, rec), fetchedAt)
		if err != nil {
			log.Warnf("order sync merge failed for %s: %v", key, err)
			continue
		}
		if changed {
			merged++
		}
	}

	metrics.SyncRunsTotal.WithLabelValues("ok").Inc()
	if merged > 0 {
		log.WithFields(log.Fields{"fetched": len(raws), "merged": merged}).Info("order sync run")
	}
}

// pushLocal resubmits orders that were placed while the server was
// unreachable. On success the fallback local key is swapped for the
// server-issued one; on failure the remainder waits for the next tick.
func (s *SyncService) pushLocal(ctx context.Context) {
	pending, err := s.Repo.ListUnsynced(10)
	if err != nil {
		log.Warnf("order sync: list unsynced failed: %v", err)
		return
	}
	for i := range pending {
		o := &pending[i]
		created, err := s.Remote.SubmitOrder(ctx, buildPayload(o))
		if err != nil {
			log.WithField("order_key", o.OrderKey).Debugf("resubmission failed: %v", err)
			return
		}
		if err := s.Repo.MarkSynced(s.Repo.DB, o.ID, created.ID); err != nil {
			log.Warnf("order sync: mark synced failed for %s: %v", o.OrderKey, err)
			return
		}
		log.WithFields(log.Fields{
			"order_key":  created.ID,
			"former_key": o.OrderKey,
		}).Info("deferred order reached the server")
	}
}

func toEntity(key string, rec normalize.Record) *entity.Order {
	items := make([]entity.OrderItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, entity.OrderItem{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
		})
	}
	var subtotal float64
	for _, it := range rec.Items {
		subtotal += it.UnitPrice * float64(it.Qty)
	}
	return &entity.Order{
		OrderKey:      key,
		Origin:        entity.OriginRemote,
		Synced:        true,
		CustomerName:  rec.CustomerName,
		CustomerPhone: rec.CustomerPhone,
		TableNo:       rec.TableNumber,
		Subtotal:      subtotal,
		Tax:           rec.Total - subtotal,
		Total:         rec.Total,
		Status:        rec.Status,
		PlacedAt:      time.Now(),
		Items:         items,
	}
}

func recordKey(raw map[string]any) string {
	for _, k := range []string{"id", "_id", "orderId"} {
		switch v := raw[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}
