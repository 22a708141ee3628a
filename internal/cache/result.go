package cache

import (
	"encoding/json"
	"time"

	"github.com/qsolve/tdprep/internal/model"
)

// GetResult retrieves a cached classification result, if present and still
// decodable.
func GetResult(c Cache, key string) (*model.Result, bool) {
	data, found := c.Get(key)
	if !found {
		return nil, false
	}
	var res model.Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Stale or corrupt entry; drop it and reclassify.
		_ = c.Delete(key)
		return nil, false
	}
	return &res, true
}

// SetResult stores a classification result under the given key.
func SetResult(c Cache, key string, res *model.Result, ttl time.Duration) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.Set(key, data, ttl)
}
