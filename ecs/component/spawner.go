package component

// Spawner instantiates Prefab at its own position each time its key is
// pressed. Mode decides how the sprite sorter learns about the new entity.
type Spawner struct {
	Prefab string
	Key    string
	Mode   DepthSortMode
	Limit  int
	Count  int
}

var SpawnerComponent = NewComponent[Spawner]()
