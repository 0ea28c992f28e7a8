// Package wadlevel decodes Doom level geometry from WAD data archives and
// answers relational queries over it. The file format is documented in The
// Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html

package wadlevel

import "fmt"

// A level is stored as a marker lump followed by its record lumps at these
// fixed offsets, in exactly this order. The lumps are located by position
// relative to the marker; no name lookup is performed for them.
const (
	thingsOffset     = 1
	linedefsOffset   = 2
	sidedefsOffset   = 3
	verticesOffset   = 4
	segsOffset       = 5
	subsectorsOffset = 6
	nodesOffset      = 7
	sectorsOffset    = 8
)

// Level is an immutable, index-addressed aggregate of one level's eight
// record sequences. A Level is never mutated after Load returns, so any
// number of readers may query it concurrently without locking. Slices
// returned by queries are views into the Level's storage; they stay valid
// for the Level's lifetime and must not be retained beyond it.
type Level struct {
	things     []Thing
	linedefs   []Linedef
	sidedefs   []Sidedef
	vertices   []Vertex
	segs       []Seg
	subsectors []Subsector
	nodes      []Node
	sectors    []Sector
}

// Load reads the named level from the archive and returns the populated
// Level. It fails with ErrLevelNotFound when the archive has no marker
// lump of that name; malformed-lump errors propagate unchanged from the
// archive layer.
func Load(a *Archive, name string) (*Level, error) {
	logger.Printf("Reading level data for %q ...", name)

	start, ok := a.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, name)
	}

	things, err := ReadRecords[binThing](a, start+thingsOffset)
	if err != nil {
		return nil, err
	}
	linedefs, err := ReadRecords[binLinedef](a, start+linedefsOffset)
	if err != nil {
		return nil, err
	}
	sidedefs, err := ReadRecords[binSidedef](a, start+sidedefsOffset)
	if err != nil {
		return nil, err
	}
	vertices, err := ReadRecords[binVertex](a, start+verticesOffset)
	if err != nil {
		return nil, err
	}
	segs, err := ReadRecords[binSeg](a, start+segsOffset)
	if err != nil {
		return nil, err
	}
	subsectors, err := ReadRecords[binSubsector](a, start+subsectorsOffset)
	if err != nil {
		return nil, err
	}
	nodes, err := ReadRecords[binNode](a, start+nodesOffset)
	if err != nil {
		return nil, err
	}
	sectors, err := ReadRecords[binSector](a, start+sectorsOffset)
	if err != nil {
		return nil, err
	}

	level := &Level{
		things:     decodeThings(things),
		linedefs:   decodeLinedefs(linedefs),
		sidedefs:   decodeSidedefs(sidedefs),
		vertices:   decodeVertices(vertices),
		segs:       decodeSegs(segs),
		subsectors: decodeSubsectors(subsectors),
		nodes:      decodeNodes(nodes),
		sectors:    decodeSectors(sectors),
	}

	logger.Printf("Loaded level %q:", name)
	logger.Printf("    %4d things", len(level.things))
	logger.Printf("    %4d linedefs", len(level.linedefs))
	logger.Printf("    %4d sidedefs", len(level.sidedefs))
	logger.Printf("    %4d vertices", len(level.vertices))
	logger.Printf("    %4d segs", len(level.segs))
	logger.Printf("    %4d subsectors", len(level.subsectors))
	logger.Printf("    %4d nodes", len(level.nodes))
	logger.Printf("    %4d sectors", len(level.sectors))

	return level, nil
}

// Sequence views. The returned slices are the Level's own storage; callers
// must treat them as read-only.

func (l *Level) Things() []Thing         { return l.things }
func (l *Level) Linedefs() []Linedef     { return l.linedefs }
func (l *Level) Sidedefs() []Sidedef     { return l.sidedefs }
func (l *Level) Vertices() []Vertex      { return l.vertices }
func (l *Level) Segs() []Seg             { return l.segs }
func (l *Level) Subsectors() []Subsector { return l.subsectors }
func (l *Level) Nodes() []Node           { return l.nodes }
func (l *Level) Sectors() []Sector       { return l.sectors }

// lookup is the shared bounds-checked access behind every cross-reference
// resolution. An out-of-range index is a data-integrity violation in the
// source file and fails the calling query.
func lookup[T any](seq []T, i int, what string) (T, error) {
	if i < 0 || i >= len(seq) {
		var zero T
		return zero, fmt.Errorf("%w: %s %d of %d", ErrInvalidIndex, what, i, len(seq))
	}
	return seq[i], nil
}

// Thing returns the thing at id.
func (l *Level) Thing(id ThingId) (Thing, error) {
	return lookup(l.things, int(id), "thing")
}

// Linedef returns the linedef at id.
func (l *Level) Linedef(id LinedefId) (Linedef, error) {
	return lookup(l.linedefs, int(id), "linedef")
}

// Sidedef returns the sidedef at id.
func (l *Level) Sidedef(id SidedefId) (Sidedef, error) {
	return lookup(l.sidedefs, int(id), "sidedef")
}

// Seg returns the seg at id.
func (l *Level) Seg(id SegId) (Seg, error) {
	return lookup(l.segs, int(id), "seg")
}

// Subsector returns the subsector at id.
func (l *Level) Subsector(id SubsectorId) (Subsector, error) {
	return lookup(l.subsectors, int(id), "subsector")
}

// Node returns the BSP node at id.
func (l *Level) Node(id NodeId) (Node, error) {
	return lookup(l.nodes, int(id), "node")
}

// Sector returns the sector at id.
func (l *Level) Sector(id SectorId) (Sector, error) {
	return lookup(l.sectors, int(id), "sector")
}

// Vertex converts the stored raw coordinate at id into world space.
func (l *Level) Vertex(id VertexId) (Vec2, error) {
	v, err := lookup(l.vertices, int(id), "vertex")
	if err != nil {
		return Vec2{}, err
	}
	return fromFileCoords(v.X, v.Y), nil
}

// SegLinedef returns the linedef the seg was split from.
func (l *Level) SegLinedef(id SegId) (Linedef, error) {
	seg, err := l.Seg(id)
	if err != nil {
		return Linedef{}, err
	}
	return lookup(l.linedefs, int(seg.Linedef), "linedef")
}

// SegVertices returns the seg's own start and end in world space, not the
// underlying linedef's.
func (l *Level) SegVertices(id SegId) (Vec2, Vec2, error) {
	seg, err := l.Seg(id)
	if err != nil {
		return Vec2{}, Vec2{}, err
	}
	start, err := l.Vertex(seg.Start)
	if err != nil {
		return Vec2{}, Vec2{}, err
	}
	end, err := l.Vertex(seg.End)
	if err != nil {
		return Vec2{}, Vec2{}, err
	}
	return start, end, nil
}

// LeftSidedef resolves the linedef's left side. ok is false for one-sided
// linedefs with no left sidedef.
func (l *Level) LeftSidedef(id LinedefId) (SidedefId, bool, error) {
	line, err := l.Linedef(id)
	if err != nil {
		return 0, false, err
	}
	return l.checkSide(line.Left)
}

// RightSidedef resolves the linedef's right side. ok is false for
// one-sided linedefs with no right sidedef.
func (l *Level) RightSidedef(id LinedefId) (SidedefId, bool, error) {
	line, err := l.Linedef(id)
	if err != nil {
		return 0, false, err
	}
	return l.checkSide(line.Right)
}

// checkSide validates a present side reference against the sidedef
// sequence bounds.
func (l *Level) checkSide(ref SidedefRef) (SidedefId, bool, error) {
	if !ref.OK {
		return 0, false, nil
	}
	if _, err := l.Sidedef(ref.ID); err != nil {
		return 0, false, err
	}
	return ref.ID, true, nil
}

// segSide resolves one side of the seg's linedef: the left side when left
// is true, the right otherwise.
func (l *Level) segSide(seg Seg, left bool) (SidedefId, bool, error) {
	line, err := lookup(l.linedefs, int(seg.Linedef), "linedef")
	if err != nil {
		return 0, false, err
	}
	if left {
		return l.checkSide(line.Left)
	}
	return l.checkSide(line.Right)
}

// SegSidedef resolves the seg's front sidedef: the linedef's right side
// for a forward seg, the left side for a reversed one. The format
// guarantees a front side; a missing one is corrupt input and fails with
// ErrMissingSidedef.
func (l *Level) SegSidedef(id SegId) (SidedefId, error) {
	seg, err := l.Seg(id)
	if err != nil {
		return 0, err
	}
	side, ok, err := l.segSide(seg, seg.Reversed)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: seg %d", ErrMissingSidedef, id)
	}
	return side, nil
}

// SegBackSidedef resolves the side opposite the seg's front. The back side
// is legitimately absent on one-sided walls, so ok is false rather than an
// error.
func (l *Level) SegBackSidedef(id SegId) (SidedefId, bool, error) {
	seg, err := l.Seg(id)
	if err != nil {
		return 0, false, err
	}
	return l.segSide(seg, !seg.Reversed)
}

// SegSector returns the sector owning the seg's front sidedef.
func (l *Level) SegSector(id SegId) (SectorId, error) {
	side, err := l.SegSidedef(id)
	if err != nil {
		return 0, err
	}
	return l.SidedefSector(side)
}

// SegBackSector returns the sector behind the seg, if any.
func (l *Level) SegBackSector(id SegId) (SectorId, bool, error) {
	side, ok, err := l.SegBackSidedef(id)
	if err != nil || !ok {
		return 0, false, err
	}
	sector, err := l.SidedefSector(side)
	if err != nil {
		return 0, false, err
	}
	return sector, true, nil
}

// SidedefSector returns the sector owning the sidedef.
func (l *Level) SidedefSector(id SidedefId) (SectorId, error) {
	side, err := l.Sidedef(id)
	if err != nil {
		return 0, err
	}
	if _, err := l.Sector(side.Sector); err != nil {
		return 0, err
	}
	return side.Sector, nil
}

// SubsectorSegs returns the subsector's contiguous run of segs as a view
// into the level's seg sequence. An empty subsector yields an empty view.
func (l *Level) SubsectorSegs(id SubsectorId) ([]Seg, error) {
	ss, err := l.Subsector(id)
	if err != nil {
		return nil, err
	}
	first, count := int(ss.First), ss.Count
	if first < 0 || count < 0 || first+count > len(l.segs) {
		return nil, fmt.Errorf("%w: subsector %d segs [%d,%d) of %d",
			ErrInvalidIndex, id, first, first+count, len(l.segs))
	}
	return l.segs[first : first+count], nil
}

// SectorMinLight computes the minimum light level among the sector and
// every sector sharing a two-sided linedef boundary with it. Adjacency is
// never materialized; every call scans all linedefs, so the cost is
// O(linedefs). Callers querying adjacency repeatedly should build their
// own index keyed by SectorId.
func (l *Level) SectorMinLight(id SectorId) (LightLevel, error) {
	sector, err := l.Sector(id)
	if err != nil {
		return 0, err
	}
	minLight := sector.Light
	for _, line := range l.linedefs {
		// One-sided linedefs bound a single sector and contribute no
		// adjacency.
		if !line.Left.OK || !line.Right.OK {
			continue
		}
		left, err := l.SidedefSector(line.Left.ID)
		if err != nil {
			return 0, err
		}
		right, err := l.SidedefSector(line.Right.ID)
		if err != nil {
			return 0, err
		}
		var adjacent SectorId
		switch id {
		case left:
			adjacent = right
		case right:
			adjacent = left
		default:
			continue
		}
		neighbor, err := l.Sector(adjacent)
		if err != nil {
			return 0, err
		}
		if neighbor.Light < minLight {
			minLight = neighbor.Light
		}
	}
	return minLight, nil
}
