package component

import (
	"fmt"
	"strings"
)

// DepthSortMode selects how an entity participates in anchor depth sorting.
type DepthSortMode string

const (
	DepthSortNone    DepthSortMode = "none"
	DepthSortStatic  DepthSortMode = "static"
	DepthSortDynamic DepthSortMode = "dynamic"
)

// ParseDepthSortMode accepts the authored mode names. An empty string is
// DepthSortNone.
func ParseDepthSortMode(s string) (DepthSortMode, error) {
	switch mode := DepthSortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", DepthSortNone:
		return DepthSortNone, nil
	case DepthSortStatic, DepthSortDynamic:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown depth sort mode %q", s)
	}
}

// DepthSort is authored on prefabs; the scene loader and spawner read it to
// hand the entity to the sorter.
type DepthSort struct {
	Mode DepthSortMode
}

var DepthSortComponent = NewComponent[DepthSort]()
