package sapling

import (
	"go.uber.org/zap"
)

// debugMaxTreeDepth is the transform depth above which a warning is logged.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if t sits deeper than debugMaxTreeDepth.
// Caller holds the hierarchy lock.
func debugCheckTreeDepth(log *zap.Logger, t *Transform) {
	if depth := depthOf(t); depth > debugMaxTreeDepth {
		log.Warn("transform tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

// debugCheckChildCount warns if t has more than debugMaxChildCount children.
// Caller holds the hierarchy lock.
func debugCheckChildCount(log *zap.Logger, t *Transform) {
	if n := len(t.children); n > debugMaxChildCount {
		log.Warn("transform has too many children",
			zap.Int("children", n),
			zap.Int("threshold", debugMaxChildCount))
	}
}
