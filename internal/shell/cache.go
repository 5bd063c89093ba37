package shell

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds cached prompt status data.
type PromptCache struct {
	Today      bool               `json:"today"`
	Streak     int                `json:"streak"`
	LatestRisk analysis.RiskLevel `json:"latest_risk,omitempty"`
	TodayDate  string             `json:"today_date"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewCache records st as computed at now.
func NewCache(st Status, now time.Time) *PromptCache {
	return &PromptCache{
		Today:      st.Today,
		Streak:     st.Streak,
		LatestRisk: st.LatestRisk,
		TodayDate:  now.Format("2006-01-02"),
		UpdatedAt:  now,
	}
}

// CachePath returns the full path to the prompt cache file.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(dataDir string) *PromptCache {
	data, err := os.ReadFile(CachePath(dataDir))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk.
func WriteCache(dataDir string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(CachePath(dataDir), data, 0600)
}

// IsFresh reports whether the cache is still valid at now. It goes stale
// when the TTL elapses or the date rolls over.
func (c *PromptCache) IsFresh(ttl time.Duration, now time.Time) bool {
	if c == nil {
		return false
	}
	if c.TodayDate != now.Format("2006-01-02") {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(dataDir string) error {
	path := CachePath(dataDir)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
