package component

// SortingOrder is the draw order inside a render layer. Lower values are
// drawn first.
type SortingOrder struct {
	Order int
}

var SortingOrderComponent = NewComponent[SortingOrder]()
