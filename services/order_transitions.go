package services

import (
	"posbackend/entity"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// allowedFrom lists the states a target status may be entered from. Items and
// bills are frozen at materialization; status is the only thing that moves.
var allowedFrom = map[string][]string{
	entity.StatusInProgress: {entity.StatusPending},
	entity.StatusReady:      {entity.StatusInProgress},
	entity.StatusCompleted:  {entity.StatusReady},
	entity.StatusCancelled:  {entity.StatusPending, entity.StatusInProgress, entity.StatusReady},
}

// Transition moves an order to the target status, guarded so a concurrent
// transition or stale terminal loses instead of double-applying.
func (s *OrderService) Transition(orderID uint, to string) error {
	froms, ok := allowedFrom[to]
	if !ok {
		return ErrInvalidTransition
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, from := range froms {
			affected, err := s.Repo.UpdateStatusGuard(tx, orderID, from, to)
			if err != nil {
				return err
			}
			if affected == 1 {
				s.afterTransition(orderID, to)
				return nil
			}
		}
		return ErrInvalidTransition
	})
}

// ConfirmPayment records a settled gateway payment on an existing order.
func (s *OrderService) ConfirmPayment(orderID uint, method, reference string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SetPayment(tx, orderID, method, reference)
	})
}

func (s *OrderService) afterTransition(orderID uint, to string) {
	if to != entity.StatusCompleted && to != entity.StatusCancelled {
		return
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil || o.TableID == 0 {
		return
	}
	// Releasing the table is best-effort, same as occupying it.
	go func() {
		if err := s.TableRepo.SetStatus(o.TableID, entity.TableAvailable); err != nil {
			log.WithField("table_id", o.TableID).Warnf("table release failed: %v", err)
		}
	}()
}
