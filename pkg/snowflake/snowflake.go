package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

var errNotInitialized = errors.New("snowflake node not initialized")

// Init configures the process-wide ID generator. nodeID must be in [0, 1023].
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// NextID returns a new unique, time-ordered ID. It panics if Init was never called.
func NextID() int64 {
	mu.RLock()
	n := node
	mu.RUnlock()
	if n == nil {
		panic(errNotInitialized)
	}
	return n.Generate().Int64()
}
