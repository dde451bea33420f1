package remote

import (
	"fmt"
	"time"

	"posbackend/metrics"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// breaker wraps gobreaker with the prometheus gauges.
type breaker struct {
	*gobreaker.CircuitBreaker
	name string
}

func newBreaker(name string) *breaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(cbName).Set(state)

			log.WithFields(log.Fields{
				"circuit": cbName,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("circuit breaker state changed")
		},
	})

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	return &breaker{CircuitBreaker: cb, name: name}
}

func (b *breaker) do(fn func() (any, error)) (any, error) {
	result, err := b.CircuitBreaker.Execute(fn)
	if err != nil {
		metrics.CircuitBreakerFailures.WithLabelValues(b.name).Inc()
	}
	return result, formatErr(b.name, err)
}

func formatErr(circuitName string, err error) error {
	if err == gobreaker.ErrOpenState {
		return fmt.Errorf("circuit breaker %s is open (service unavailable)", circuitName)
	}
	if err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("circuit breaker %s: too many requests in half-open state", circuitName)
	}
	return err
}
