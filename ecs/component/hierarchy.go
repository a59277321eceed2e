package component

// Parent links a child to its owner (ecs.Entity is uint64).
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Children lists immediate children in attach order.
type Children struct {
	Entities []uint64
}

var ChildrenComponent = NewComponent[Children]()
