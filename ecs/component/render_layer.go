package component

// RenderLayer groups sprites; layers are drawn in ascending Index before
// SortingOrder is considered.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
