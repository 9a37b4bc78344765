package cartographer

import (
	"cmp"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

const (
	// Sector points are stored as tiny boxes; the tree never matches zero-area rects.
	pointTolerance = 1e-9

	minBranch = 25
	maxBranch = 50
)

type sectorEntry struct {
	id     generation.SectorID
	point  hex.Point
	bounds rtreego.Rect
}

func (e *sectorEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// spatialIndex is an R-tree over sector centers in Cartesian space.
type spatialIndex struct {
	tree    *rtreego.Rtree
	entries []*sectorEntry
}

// newSpatialIndex bulk-loads every sector position in one pass.
func newSpatialIndex(layout hex.Layout, sectors []generation.ProtoSector) *spatialIndex {
	entries := make([]*sectorEntry, len(sectors))
	objs := make([]rtreego.Spatial, len(sectors))
	for i := range sectors {
		pt := layout.CoordToCartesian(sectors[i].Location)
		e := &sectorEntry{
			id:     sectors[i].ID,
			point:  pt,
			bounds: rtreego.Point{pt.X, pt.Y}.ToRect(pointTolerance),
		}
		entries[i] = e
		objs[i] = e
	}
	return &spatialIndex{
		tree:    rtreego.NewTree(2, minBranch, maxBranch, objs...),
		entries: entries,
	}
}

// within returns the sectors inside the axis-aligned square of half-width
// radius around center, ordered by id.
func (s *spatialIndex) within(center hex.Point, radius float64) ([]generation.SectorID, error) {
	lo := rtreego.Point{center.X - radius - pointTolerance, center.Y - radius - pointTolerance}
	hi := rtreego.Point{center.X + radius + pointTolerance, center.Y + radius + pointTolerance}
	box, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		return nil, err
	}

	var ids []generation.SectorID
	for _, obj := range s.tree.SearchIntersect(box) {
		e := obj.(*sectorEntry)
		if math.Abs(e.point.X-center.X) <= radius && math.Abs(e.point.Y-center.Y) <= radius {
			ids = append(ids, e.id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// nearest returns up to k sectors closest to center, nearest first, ties by id.
func (s *spatialIndex) nearest(center hex.Point, k int) []generation.SectorID {
	if k <= 0 || len(s.entries) == 0 {
		return nil
	}
	found := s.tree.NearestNeighbors(k, rtreego.Point{center.X, center.Y})

	hits := make([]*sectorEntry, 0, len(found))
	for _, obj := range found {
		if obj == nil {
			continue
		}
		hits = append(hits, obj.(*sectorEntry))
	}
	slices.SortFunc(hits, func(a, b *sectorEntry) int {
		if c := cmp.Compare(a.point.DistanceTo(center), b.point.DistanceTo(center)); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	ids := make([]generation.SectorID, len(hits))
	for i, e := range hits {
		ids[i] = e.id
	}
	return ids
}

func (s *spatialIndex) size() int {
	return s.tree.Size()
}
