package geolib

import (
	"net/http"
	"sync"
	"time"
)

type circuitBreakerCallback func() (*http.Response, error)

const (
	circuitBreakerStateClosed uint32 = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

// circuitBreaker stops hitting a geolocation service after a series of
// failures. States are switched lazily on each call so there are no
// background timers to stop.
type circuitBreaker struct {
	mutex sync.Mutex
	now   func() time.Time

	state            uint32
	failuresCount    uint32
	halfOpenInFlight bool
	openedAt         time.Time
	firstFailureAt   time.Time

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Do(callback circuitBreakerCallback) (*http.Response, error) {
	if !c.acquire() {
		return nil, ErrCircuitBreakerOpened
	}

	resp, err := callback()

	c.release(err)

	return resp, err
}

func (c *circuitBreaker) acquire() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()

	switch c.state {
	case circuitBreakerStateOpened:
		if now.Sub(c.openedAt) < c.halfOpenTimeout {
			return false
		}

		c.switchState(circuitBreakerStateHalfOpened)
	case circuitBreakerStateClosed:
		if c.failuresCount > 0 && now.Sub(c.firstFailureAt) >= c.resetFailuresTimeout {
			c.failuresCount = 0
		}

		return true
	}

	if c.halfOpenInFlight {
		return false
	}

	c.halfOpenInFlight = true

	return true
}

func (c *circuitBreaker) release(err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch c.state {
	case circuitBreakerStateHalfOpened:
		if err != nil {
			c.switchState(circuitBreakerStateOpened)
		} else {
			c.switchState(circuitBreakerStateClosed)
		}
	case circuitBreakerStateClosed:
		if err == nil {
			c.failuresCount = 0

			return
		}

		if c.failuresCount == 0 {
			c.firstFailureAt = c.now()
		}

		c.failuresCount++

		if c.failuresCount > c.openThreshold {
			c.switchState(circuitBreakerStateOpened)
		}
	}
}

func (c *circuitBreaker) switchState(state uint32) {
	if state == circuitBreakerStateOpened {
		c.openedAt = c.now()
	}

	c.state = state
	c.failuresCount = 0
	c.halfOpenInFlight = false
}

func newCircuitBreaker(openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) *circuitBreaker {
	return &circuitBreaker{
		now:                  time.Now,
		state:                circuitBreakerStateClosed,
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}
}
