package geolib

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStats tracks how often geolocator was used, how often it has
// failed and how many times resolver had to use a fallback coordinate.
type UsageStats struct {
	Name string

	mutex         sync.Mutex
	lastUsed      time.Time
	successCount  uint64
	failureCount  uint64
	fallbackCount uint64
}

func (u *UsageStats) Used(err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now

	if err == nil {
		u.successCount++
	} else {
		u.failureCount++
	}
}

func (u *UsageStats) Fallback() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.fallbackCount++
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	var lastUsedTime int64

	u.mutex.Lock()

	if !u.lastUsed.IsZero() {
		lastUsedTime = u.lastUsed.Unix()
	}

	rawStruct := struct {
		Name          string `json:"name"`
		LastUsed      int64  `json:"last_used"`
		SuccessCount  uint64 `json:"success_count"`
		FailureCount  uint64 `json:"failure_count"`
		FallbackCount uint64 `json:"fallback_count"`
	}{
		Name:          u.Name,
		LastUsed:      lastUsedTime,
		SuccessCount:  u.successCount,
		FailureCount:  u.failureCount,
		FallbackCount: u.fallbackCount,
	}

	u.mutex.Unlock()

	return json.Marshal(&rawStruct)
}
