package lending

import (
	"time"
)

// GetBlockByTime maps wall time to the deterministic block height the indices
// compound on: 15-second blocks counted from genesis.
func GetBlockByTime(genesis, t time.Time) int64 {
	seconds := t.Unix() - genesis.Unix()
	if seconds < 0 {
		return 0
	}
	return seconds / SecondsPerBlock
}
