package component

// Chaser moves its entity toward the first entity tagged Target.
type Chaser struct {
	MoveSpeed float64 // world units per second
	Target    string
	StopRange float64
}

var ChaserComponent = NewComponent[Chaser]()
