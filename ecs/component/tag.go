package component

// Tag is a free-form label used to find entities by role, e.g. the
// "SortPoint" child that marks a sprite's ground anchor or the "Player"
// target of a chaser.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()
