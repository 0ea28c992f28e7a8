package wadlevel

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Ids address the eight record sequences of a Level. Every query accepts
// and returns ids, so entity identity is positional, never pointer based.
type (
	ThingId     int
	LinedefId   int
	SidedefId   int
	VertexId    int
	SegId       int
	SubsectorId int
	NodeId      int
	SectorId    int
)

// LightLevel is a sector's brightness, 0 (dark) to 255 (full bright).
type LightLevel int

// Vec2 is a world-space coordinate.
type Vec2 struct {
	X, Y float64
}

// File coordinates are 100 units to the world unit, with the X axis
// mirrored relative to world space.
const coordScale = 100

func fromFileCoords(x, y int16) Vec2 {
	return Vec2{X: -float64(x) / coordScale, Y: float64(y) / coordScale}
}

// Thing

type binThing struct {
	X       int16
	Y       int16
	Angle   int16
	Type    int16
	Options int16
}

// Thing is a placed game-object spawn point. Things are stored for
// consumers; no query here resolves them further.
type Thing struct {
	X, Y            int16
	Angle           float64 // Radians
	Type            int
	Skill1and2      bool
	Skill3          bool
	Skill4and5      bool
	Ambush          bool
	MultiplayerOnly bool
}

func decodeThings(bins []binThing) []Thing {
	things := make([]Thing, len(bins))
	for i, t := range bins {
		things[i] = Thing{
			X:               t.X,
			Y:               t.Y,
			Angle:           degreesToRadians(t.Angle),
			Type:            int(t.Type),
			Skill1and2:      t.Options&1 != 0,
			Skill3:          t.Options&2 != 0,
			Skill4and5:      t.Options&4 != 0,
			Ambush:          t.Options&8 != 0,
			MultiplayerOnly: t.Options&0x10 != 0,
		}
	}
	return things
}

// Linedef

type binLinedef struct {
	VertexStart, VertexEnd int16
	Flags                  int16
	Type                   int16
	SectorTag              int16
	SideR, SideL           int16
}

// noSidedef is the on-disk sentinel for a missing side.
const noSidedef = -1

// SidedefRef is an optional reference to a sidedef. One-sided linedefs
// have no sidedef on one side; on disk that is a -1 index, decoded here
// into an explicit absent value.
type SidedefRef struct {
	ID SidedefId
	OK bool
}

func sidedefRef(num int16) SidedefRef {
	if num == noSidedef {
		return SidedefRef{}
	}
	return SidedefRef{ID: SidedefId(num), OK: true}
}

// Linedef flag bits.
const (
	LineBlocks = 1 << iota
	LineBlocksMonsters
	LineTwoSided
	LineUpperUnpegged
	LineLowerUnpegged
	LineSecret
	LineBlocksSound
	LineNeverOnMap
	LineAlwaysOnMap
)

// Linedef is a wall boundary between at most two sectors.
type Linedef struct {
	Start, End  VertexId
	Flags       int
	Type        int
	SectorTag   int
	Right, Left SidedefRef
}

// TwoSided reports whether the linedef is flagged as bounding sectors on
// both sides.
func (l Linedef) TwoSided() bool {
	return l.Flags&LineTwoSided != 0
}

func decodeLinedefs(bins []binLinedef) []Linedef {
	linedefs := make([]Linedef, len(bins))
	for i, line := range bins {
		linedefs[i] = Linedef{
			Start:     VertexId(line.VertexStart),
			End:       VertexId(line.VertexEnd),
			Flags:     int(line.Flags),
			Type:      int(line.Type),
			SectorTag: int(line.SectorTag),
			Right:     sidedefRef(line.SideR),
			Left:      sidedefRef(line.SideL),
		}
	}
	return linedefs
}

// Sidedef

type binSidedef struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  Name8
	LowerTexture  Name8
	MiddleTexture Name8
	SectorNum     int16
}

// Sidedef is one directional face of a linedef. Every sidedef belongs to
// exactly one sector. Texture names are canonicalized once at load.
type Sidedef struct {
	XOffset, YOffset int
	UpperTexture     string
	LowerTexture     string
	MiddleTexture    string
	Sector           SectorId
}

func decodeSidedefs(bins []binSidedef) []Sidedef {
	sidedefs := make([]Sidedef, len(bins))
	for i, s := range bins {
		sidedefs[i] = Sidedef{
			XOffset:       int(s.XOffset),
			YOffset:       int(s.YOffset),
			UpperTexture:  s.UpperTexture.Canonical(),
			LowerTexture:  s.LowerTexture.Canonical(),
			MiddleTexture: s.MiddleTexture.Canonical(),
			Sector:        SectorId(s.SectorNum),
		}
	}
	return sidedefs
}

// Vertex

type binVertex struct {
	X, Y int16
}

// Vertex is a 2D map coordinate in raw file units. The Level.Vertex query
// applies the file-to-world transform.
type Vertex struct {
	X, Y int16
}

func decodeVertices(bins []binVertex) []Vertex {
	vertices := make([]Vertex, len(bins))
	for i, v := range bins {
		vertices[i] = Vertex{X: v.X, Y: v.Y}
	}
	return vertices
}

// Seg

type binSeg struct {
	V1        int16
	V2        int16
	Angle     int16 // Full circle is -32768 to 32767.
	LineNum   int16
	Direction int16 // 0 - same as linedef, 1 - opposite to linedef
	Offset    int16 // Distance along line to start of segment
}

// Seg is a BSP-split fragment of a linedef, carrying its own endpoints. A
// reversed seg runs opposite to its linedef, which swaps which sidedef is
// its front.
type Seg struct {
	Start, End VertexId
	Angle      float64 // Radians
	Linedef    LinedefId
	Reversed   bool
	Offset     float64
}

func decodeSegs(bins []binSeg) []Seg {
	segs := make([]Seg, len(bins))
	for i, s := range bins {
		segs[i] = Seg{
			Start:    VertexId(s.V1),
			End:      VertexId(s.V2),
			Angle:    bamToRadians(s.Angle),
			Linedef:  LinedefId(s.LineNum),
			Reversed: s.Direction == 1,
			Offset:   float64(s.Offset),
		}
	}
	return segs
}

// Subsector

type binSubsector struct {
	NumSegs  int16
	FirstSeg int16
}

// Subsector is a convex BSP leaf denoting a contiguous run of segs.
type Subsector struct {
	First SegId
	Count int
}

func decodeSubsectors(bins []binSubsector) []Subsector {
	subsectors := make([]Subsector, len(bins))
	for i, s := range bins {
		subsectors[i] = Subsector{
			First: SegId(s.FirstSeg),
			Count: int(s.NumSegs),
		}
	}
	return subsectors
}

// Node

type binBBox struct {
	Top    int16
	Bottom int16
	Left   int16
	Right  int16
}

type BoundBox struct {
	Top, Bottom, Left, Right int
}

type binNode struct {
	X, Y                 int16
	DX, DY               int16
	BBoxR, BBoxL         binBBox
	ChildNumR, ChildNumL int16
}

// Node is a BSP split-plane node. Nodes are stored for BSP-traversing
// consumers; no query here resolves them further.
type Node struct {
	X, Y                 int
	DX, DY               int
	BBoxR, BBoxL         BoundBox
	ChildNumR, ChildNumL int
}

func decodeNodes(bins []binNode) []Node {
	nodes := make([]Node, len(bins))
	for i, n := range bins {
		nodes[i] = Node{
			X:  int(n.X),
			Y:  int(n.Y),
			DX: int(n.DX),
			DY: int(n.DY),
			BBoxR: BoundBox{
				int(n.BBoxR.Top),
				int(n.BBoxR.Bottom),
				int(n.BBoxR.Left),
				int(n.BBoxR.Right),
			},
			BBoxL: BoundBox{
				int(n.BBoxL.Top),
				int(n.BBoxL.Bottom),
				int(n.BBoxL.Left),
				int(n.BBoxL.Right),
			},
			ChildNumR: int(n.ChildNumR),
			ChildNumL: int(n.ChildNumL),
		}
	}
	return nodes
}

// Sector

type binSector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   Name8
	CeilingTexture Name8
	LightLevel     int16
	Type           int16
	TagNum         int16
}

// Sector is a flat region with uniform floor/ceiling heights and light
// level. A sector has no stored id; it is identified by its SectorId
// position in the sequence.
type Sector struct {
	FloorHeight    int
	CeilingHeight  int
	FloorTexture   string
	CeilingTexture string
	Light          LightLevel
	Type           int
	Tag            int
}

func decodeSectors(bins []binSector) []Sector {
	sectors := make([]Sector, len(bins))
	for i, s := range bins {
		sectors[i] = Sector{
			FloorHeight:    int(s.FloorHeight),
			CeilingHeight:  int(s.CeilingHeight),
			FloorTexture:   s.FloorTexture.Canonical(),
			CeilingTexture: s.CeilingTexture.Canonical(),
			Light:          LightLevel(s.LightLevel),
			Type:           int(s.Type),
			Tag:            int(s.TagNum),
		}
	}
	return sectors
}

// degreesToRadians
func degreesToRadians[T constraints.Integer | constraints.Float](n T) float64 {
	return float64(n) * (math.Pi / 180)
}

const halfScale = 1 << 15

// bamToRadians converts a binary angle (full circle -32768 to 32767) to
// radians.
func bamToRadians[T constraints.Signed](n T) float64 {
	return ((float64(n) + halfScale) * math.Pi) / halfScale
}
