package world

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// CellSize is the edge length of a broadphase cell on the XY plane.
const CellSize = float32(512)

// CellPos is the position of a broadphase cell.
type CellPos [2]int32

func cellOf(x, y float32) CellPos {
	return CellPos{int32(math32.Floor(x / CellSize)), int32(math32.Floor(y / CellSize))}
}

// Scene is a static collection of solids that answers collision queries. It is safe to share a
// scene between simulations running on different goroutines.
type Scene struct {
	bodies map[collision.BodyID]*Body
	cells  map[CellPos][]collision.BodyID
	nextID collision.BodyID

	log *zap.Logger

	deadlock.RWMutex
}

// NewScene creates an empty scene.
func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		bodies: make(map[collision.BodyID]*Body),
		cells:  make(map[CellPos][]collision.BodyID),
		log:    log.Named("scene"),
	}
}

// AddBox adds an axis-aligned solid box to the scene.
func (s *Scene) AddBox(bb cube.BBox, tags collision.TagSet) collision.BodyID {
	return s.add(&Body{Kind: BodyBox, Box: bb, Tags: tags})
}

// AddRamp adds a solid ramp to the scene.
func (s *Scene) AddRamp(r Ramp, tags collision.TagSet) collision.BodyID {
	return s.add(&Body{Kind: BodyRamp, Box: r.Bounds(), Ramp: r, Tags: tags})
}

func (s *Scene) add(b *Body) collision.BodyID {
	s.Lock()
	defer s.Unlock()

	s.nextID++
	b.ID = s.nextID
	s.bodies[b.ID] = b
	s.forCells(b.Box, func(pos CellPos) {
		s.cells[pos] = append(s.cells[pos], b.ID)
	})
	s.log.Debug("added body", zap.Uint32("id", uint32(b.ID)), zap.Uint8("kind", uint8(b.Kind)), zap.Any("min", b.Box.Min()), zap.Any("max", b.Box.Max()))
	return b.ID
}

// Remove removes a body from the scene. It returns false if no body with the ID exists.
func (s *Scene) Remove(id collision.BodyID) bool {
	s.Lock()
	defer s.Unlock()

	b, ok := s.bodies[id]
	if !ok {
		return false
	}
	delete(s.bodies, id)
	s.forCells(b.Box, func(pos CellPos) {
		ids := slices.DeleteFunc(s.cells[pos], func(other collision.BodyID) bool {
			return other == id
		})
		if len(ids) == 0 {
			delete(s.cells, pos)
			return
		}
		s.cells[pos] = ids
	})
	return true
}

// Body returns a copy of the body with the given ID.
func (s *Scene) Body(id collision.BodyID) (Body, bool) {
	s.RLock()
	defer s.RUnlock()

	b, ok := s.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Len returns the number of bodies in the scene.
func (s *Scene) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.bodies)
}

// PurgeBodies removes every body from the scene.
func (s *Scene) PurgeBodies() {
	s.Lock()
	defer s.Unlock()

	clear(s.bodies)
	clear(s.cells)
}

// SweepSphere ...
func (s *Scene) SweepSphere(start, end mgl32.Vec3, radius float32, filter collision.Filter) (collision.Hit, bool) {
	return s.sweep(start, end, collision.Sphere(radius), filter)
}

// SweepCapsule ...
func (s *Scene) SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter collision.Filter) (collision.Hit, bool) {
	return s.sweep(start, end, collision.Capsule(radius, halfHeight), filter)
}

// LineTrace ...
func (s *Scene) LineTrace(start, end mgl32.Vec3, filter collision.Filter) (collision.Hit, bool) {
	return s.sweep(start, end, collision.Line(), filter)
}

func (s *Scene) sweep(start, end mgl32.Vec3, shape collision.Shape, filter collision.Filter) (collision.Hit, bool) {
	s.RLock()
	defer s.RUnlock()

	var (
		best  collision.Hit
		found bool
	)
	for _, id := range s.candidates(game.SweptBounds(start, end, shape.Extents())) {
		if filter.Ignores(id) {
			continue
		}
		hit, ok := s.bodies[id].sweep(start, end, shape)
		if !ok {
			continue
		}
		if !found || hit.Time < best.Time || (hit.Time == best.Time && hit.PenetrationDepth > best.PenetrationDepth) {
			best, found = hit, true
		}
	}
	return best, found
}

// candidates returns the IDs of bodies whose bounds intersect the box, in ascending order. The
// caller must hold the read lock.
func (s *Scene) candidates(bb cube.BBox) []collision.BodyID {
	var ids []collision.BodyID
	s.forCells(bb, func(pos CellPos) {
		for _, id := range s.cells[pos] {
			if !slices.Contains(ids, id) && s.bodies[id].Box.Grow(contactSlop).IntersectsWith(bb) {
				ids = append(ids, id)
			}
		}
	})
	slices.Sort(ids)
	return ids
}

func (s *Scene) forCells(bb cube.BBox, f func(pos CellPos)) {
	min, max := cellOf(bb.Min()[0], bb.Min()[1]), cellOf(bb.Max()[0], bb.Max()[1])
	for x := min[0]; x <= max[0]; x++ {
		for y := min[1]; y <= max[1]; y++ {
			f(CellPos{x, y})
		}
	}
}
