package jwst

import (
	"sync"

	"github.com/obsdesk/jwstatus/pkg/status"
)

// visitCache memoizes visit status reports by program id for the lifetime of
// the process. Reads may happen concurrently from multiple sessions; racing
// writes for the same id store identical results, so no singleflight is
// needed.
type visitCache struct {
	mu      sync.RWMutex
	reports map[string][]status.VisitRecord
}

func newVisitCache() *visitCache {
	return &visitCache{
		reports: make(map[string][]status.VisitRecord),
	}
}

func (c *visitCache) get(pid string) ([]status.VisitRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.reports[pid]
	return records, ok
}

func (c *visitCache) put(pid string, records []status.VisitRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[pid] = records
}
