package system

import (
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/zap"
)

const (
	DefaultSortPrecision = 2
	DefaultSortPointTag  = "SortPoint"
)

// SpriteSorterConfig controls how sprite positions become draw orders.
type SpriteSorterConfig struct {
	// Precision is the power of ten applied to world units before rounding.
	Precision int `mapstructure:"precision"`
	// Multiplier overrides 10^Precision when positive.
	Multiplier float64 `mapstructure:"multiplier"`
	// DestroyAnchorAfterUse removes the anchor child once its offset is read.
	DestroyAnchorAfterUse bool `mapstructure:"destroy_anchor_after_use"`
	// AnchorTag names the child that marks a sprite's ground point.
	AnchorTag string `mapstructure:"anchor_tag"`
	// ScanScene makes the static pass cover every sprite present at start,
	// not only the ones added with AddStatic.
	ScanScene bool `mapstructure:"scan_scene"`
}

func DefaultSpriteSorterConfig() SpriteSorterConfig {
	return SpriteSorterConfig{
		Precision: DefaultSortPrecision,
		AnchorTag: DefaultSortPointTag,
	}
}

// FallbackOffset is an authored anchor offset for sprites drawn with Image
// that carry no anchor child.
type FallbackOffset struct {
	Image  string  `yaml:"image"`
	Offset float64 `yaml:"offset"`
}

type trackedSprite struct {
	entity ecs.Entity
	offset float64
}

// SpriteSorter assigns SortingOrder to sprites from their world y plus the
// offset to their anchor, so sprites lower on screen draw over sprites
// behind them. Dynamic sprites are re-sorted every Update; static sprites
// are sorted once by Start.
type SpriteSorter struct {
	cfg        SpriteSorterConfig
	multiplier float64
	logger     *zap.Logger

	dynamic  []trackedSprite
	tracked  map[ecs.Entity]struct{}
	static   []ecs.Entity
	fallback map[string]float64
	started  bool
}

func NewSpriteSorter(cfg SpriteSorterConfig, logger *zap.Logger) *SpriteSorter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AnchorTag == "" {
		cfg.AnchorTag = DefaultSortPointTag
	}
	if cfg.Precision < 0 {
		cfg.Precision = 0
	}
	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = math.Pow(10, float64(cfg.Precision))
	}
	return &SpriteSorter{
		cfg:        cfg,
		multiplier: multiplier,
		logger:     logger.Named("sprite_sorter"),
		tracked:    make(map[ecs.Entity]struct{}),
		fallback:   make(map[string]float64),
	}
}

// SetFallbackOffsets replaces the fallback table. When an image appears more
// than once the first entry wins.
func (s *SpriteSorter) SetFallbackOffsets(entries []FallbackOffset) {
	s.fallback = make(map[string]float64, len(entries))
	for _, entry := range entries {
		if _, dup := s.fallback[entry.Image]; dup {
			s.logger.Warn("duplicate fallback offset ignored",
				zap.String("image", entry.Image),
				zap.Float64("offset", entry.Offset),
			)
			continue
		}
		s.fallback[entry.Image] = entry.Offset
	}
}

// Register adds e to the dynamic set so its order follows it every tick.
// It reports whether e is tracked after the call.
func (s *SpriteSorter) Register(w *ecs.World, e ecs.Entity) bool {
	if !renderable(w, e) {
		return false
	}
	if _, ok := s.tracked[e]; ok {
		return true
	}
	offset, ok := s.resolveOffset(w, e)
	if !ok {
		s.reportMissingOffset(w, e, "register")
		return false
	}
	s.dynamic = append(s.dynamic, trackedSprite{entity: e, offset: offset})
	s.tracked[e] = struct{}{}
	return true
}

// Registered reports whether e is in the dynamic set.
func (s *SpriteSorter) Registered(e ecs.Entity) bool {
	_, ok := s.tracked[e]
	return ok
}

// DynamicCount returns the size of the dynamic set, stale entries included
// until the next Update.
func (s *SpriteSorter) DynamicCount() int {
	return len(s.dynamic)
}

// StaticCount returns the number of entities added with AddStatic.
func (s *SpriteSorter) StaticCount() int {
	return len(s.static)
}

// SortOnce orders e immediately without tracking it. It reports whether an
// order was written.
func (s *SpriteSorter) SortOnce(w *ecs.World, e ecs.Entity) bool {
	if !renderable(w, e) {
		return false
	}
	offset, ok := s.resolveOffset(w, e)
	if !ok {
		s.reportMissingOffset(w, e, "sort once")
		return false
	}
	return s.apply(w, e, offset)
}

// Track hands a freshly created entity to the sorter: dynamic entities are
// registered, static ones are sorted immediately.
func (s *SpriteSorter) Track(w *ecs.World, e ecs.Entity, mode component.DepthSortMode) bool {
	switch mode {
	case component.DepthSortDynamic:
		return s.Register(w, e)
	case component.DepthSortStatic:
		return s.SortOnce(w, e)
	default:
		return false
	}
}

// AddStatic queues e for the static pass.
func (s *SpriteSorter) AddStatic(e ecs.Entity) {
	if !e.Valid() {
		return
	}
	s.static = append(s.static, e)
}

// Start runs the static pass the first time it is called after
// construction or Reset.
func (s *SpriteSorter) Start(w *ecs.World) {
	if s.started {
		return
	}
	s.started = true
	s.SortStatic(w)
}

// SortStatic orders every static sprite. With ScanScene it also orders every
// sprite in the world that is not dynamically tracked.
func (s *SpriteSorter) SortStatic(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{}, len(s.static))
	for _, e := range s.static {
		seen[e] = struct{}{}
		s.SortOnce(w, e)
	}
	if !s.cfg.ScanScene || w == nil {
		return
	}
	for _, e := range w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind()) {
		if _, ok := seen[e]; ok {
			continue
		}
		if _, ok := s.tracked[e]; ok {
			continue
		}
		s.SortOnce(w, e)
	}
}

// Update re-sorts the dynamic set. Entries whose entity was destroyed or lost
// its sprite are dropped; survivors keep their registration order.
func (s *SpriteSorter) Update(w *ecs.World) {
	kept := s.dynamic[:0]
	for _, tracked := range s.dynamic {
		if !s.apply(w, tracked.entity, tracked.offset) {
			delete(s.tracked, tracked.entity)
			continue
		}
		kept = append(kept, tracked)
	}
	for i := len(kept); i < len(s.dynamic); i++ {
		s.dynamic[i] = trackedSprite{}
	}
	s.dynamic = kept
}

// Reset forgets every tracked sprite and re-arms Start. Call it when the
// scene is torn down.
func (s *SpriteSorter) Reset() {
	s.dynamic = nil
	s.static = nil
	s.tracked = make(map[ecs.Entity]struct{})
	s.started = false
}

// OrderKey converts an anchor's world y into a draw order. Higher y is
// further back and yields a lower order.
func (s *SpriteSorter) OrderKey(y float64) int {
	return int(math.Round(y * -s.multiplier))
}

// AnchorOffset finds e's anchor child and returns its local y scaled by e's
// y scale. It reports false when e has no anchor child.
func (s *SpriteSorter) AnchorOffset(w *ecs.World, e ecs.Entity) (float64, bool) {
	for _, child := range ecs.ChildrenOf(w, e) {
		tag, ok := ecs.Get(w, child, component.TagComponent.Kind())
		if !ok || tag.Name != s.cfg.AnchorTag {
			continue
		}
		local, ok := ecs.Get(w, child, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		parent, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		offset := local.Y * parent.EffectiveScaleY()
		if s.cfg.DestroyAnchorAfterUse {
			ecs.DestroyTree(w, child)
		}
		return offset, true
	}
	return 0, false
}

func (s *SpriteSorter) resolveOffset(w *ecs.World, e ecs.Entity) (float64, bool) {
	if offset, ok := s.AnchorOffset(w, e); ok {
		return offset, true
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return 0, false
	}
	offset, ok := s.fallback[sprite.ImageID]
	return offset, ok
}

func (s *SpriteSorter) apply(w *ecs.World, e ecs.Entity, offset float64) bool {
	if !renderable(w, e) {
		return false
	}
	_, y, ok := ecs.WorldPosition(w, e)
	if !ok {
		return false
	}
	order := s.OrderKey(y + offset)
	if so, ok := ecs.Get(w, e, component.SortingOrderComponent.Kind()); ok {
		so.Order = order
		return true
	}
	return ecs.Add(w, e, component.SortingOrderComponent.Kind(), &component.SortingOrder{Order: order}) == nil
}

func (s *SpriteSorter) reportMissingOffset(w *ecs.World, e ecs.Entity, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Stringer("entity", e),
		zap.String("anchor_tag", s.cfg.AnchorTag),
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		fields = append(fields, zap.String("image", sprite.ImageID))
	}
	if tag, ok := ecs.Get(w, e, component.TagComponent.Kind()); ok {
		fields = append(fields, zap.String("name", tag.Name))
	}
	s.logger.Error("no sort offset: missing anchor child and fallback entry", fields...)
}

func renderable(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.SpriteComponent.Kind()) && ecs.Has(w, e, component.TransformComponent.Kind())
}
