package component

type Player struct {
	MoveSpeed float64 // world units per second
}

var PlayerComponent = NewComponent[Player]()
