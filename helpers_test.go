package wadlevel_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stuarthighley/wadlevel"
)

type lump struct {
	name string
	data []byte
}

// buildWAD assembles an in-memory IWAD image from the given lumps:
// 12-byte header, lump bodies, then the directory.
func buildWAD(t *testing.T, lumps []lump) io.ReadSeeker {
	t.Helper()

	const headerSize = 12
	var body bytes.Buffer
	type dirEntry struct {
		pos, size int32
		name      string
	}
	dir := make([]dirEntry, len(lumps))
	for i, l := range lumps {
		dir[i] = dirEntry{
			pos:  int32(headerSize + body.Len()),
			size: int32(len(l.data)),
			name: l.name,
		}
		body.Write(l.data)
	}

	var out bytes.Buffer
	out.WriteString("IWAD")
	require.NoError(t, binary.Write(&out, binary.LittleEndian, int32(len(lumps))))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, int32(headerSize+body.Len())))
	out.Write(body.Bytes())
	for _, e := range dir {
		require.NoError(t, binary.Write(&out, binary.LittleEndian, e.pos))
		require.NoError(t, binary.Write(&out, binary.LittleEndian, e.size))
		out.Write(name8(e.name))
	}
	return bytes.NewReader(out.Bytes())
}

// name8 pads a name to the fixed 8-byte on-disk field.
func name8(s string) []byte {
	var b [8]byte
	copy(b[:], s)
	return b[:]
}

// int16s packs values as consecutive little-endian int16 fields.
func int16s(t *testing.T, vals ...int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, vals))
	return buf.Bytes()
}

func cat(recs ...[]byte) []byte {
	return bytes.Join(recs, nil)
}

// Record encoders matching the on-disk layouts.

func thingRec(t *testing.T, x, y, angle, typ, options int16) []byte {
	return int16s(t, x, y, angle, typ, options)
}

func linedefRec(t *testing.T, start, end, flags, typ, tag, right, left int16) []byte {
	return int16s(t, start, end, flags, typ, tag, right, left)
}

func sidedefRec(t *testing.T, upper, lower, middle string, sector int16) []byte {
	return cat(int16s(t, 0, 0), name8(upper), name8(lower), name8(middle), int16s(t, sector))
}

func vertexRec(t *testing.T, x, y int16) []byte {
	return int16s(t, x, y)
}

func segRec(t *testing.T, v1, v2, angle, line, direction, offset int16) []byte {
	return int16s(t, v1, v2, angle, line, direction, offset)
}

func subsectorRec(t *testing.T, numSegs, firstSeg int16) []byte {
	return int16s(t, numSegs, firstSeg)
}

func nodeRec(t *testing.T) []byte {
	return int16s(t,
		0, 0, 64, 0, // split line
		64, 0, 0, 64, // right bbox
		64, 0, 0, 64, // left bbox
		0, -32768, // children
	)
}

func sectorRec(t *testing.T, floorH, ceilH int16, floor, ceiling string, light, typ, tag int16) []byte {
	return cat(int16s(t, floorH, ceilH), name8(floor), name8(ceiling), int16s(t, light, typ, tag))
}

// Fixture geometry for the well-formed level E1M1, a square split into
// three sectors:
//
//	sector 0 (light 200) | sector 1 (light 50) | sector 2 (light 120)
//
// Linedef 0 separates sectors 0 and 1 (two-sided), linedef 1 separates
// sectors 1 and 2 (two-sided), linedef 2 is a one-sided outer wall of
// sector 0 (right side only).
func testLevelLumps(t *testing.T) []lump {
	t.Helper()
	return []lump{
		{"E1M1", nil},
		{"THINGS", thingRec(t, 32, 32, 90, 1, 7)},
		{"LINEDEFS", cat(
			linedefRec(t, 0, 1, 4, 0, 0, 0, 1), // sides: right=0 (sector 0), left=1 (sector 1)
			linedefRec(t, 1, 2, 4, 0, 0, 2, 3), // sides: right=2 (sector 1), left=3 (sector 2)
			linedefRec(t, 2, 3, 1, 0, 0, 4, -1), // one-sided: right=4 (sector 0)
		)},
		{"SIDEDEFS", cat(
			sidedefRec(t, "metal1", "", "door3", 0),
			sidedefRec(t, "METAL1", "", "", 1),
			sidedefRec(t, "", "STEP6", "", 1),
			sidedefRec(t, "", "", "BRICK7", 2),
			sidedefRec(t, "", "", "STARTAN3", 0),
		)},
		{"VERTEXES", cat(
			vertexRec(t, 0, 0),
			vertexRec(t, 0, 64),
			vertexRec(t, 64, 64),
			vertexRec(t, 64, 0),
		)},
		{"SEGS", cat(
			segRec(t, 0, 1, 16384, 0, 0, 0), // front of linedef 0
			segRec(t, 1, 0, -16384, 0, 1, 0), // back of linedef 0
			segRec(t, 2, 3, 0, 2, 0, 0),      // front of the one-sided wall
			segRec(t, 3, 2, 0, 2, 1, 0),      // reversed seg on the one-sided wall
		)},
		{"SSECTORS", cat(
			subsectorRec(t, 2, 0),
			subsectorRec(t, 2, 2),
			subsectorRec(t, 0, 4), // empty
		)},
		{"NODES", nodeRec(t)},
		{"SECTORS", cat(
			sectorRec(t, 0, 128, "flat14", "f_sky1", 200, 0, 0),
			sectorRec(t, 0, 128, "FLAT14", "CEIL3_5", 50, 0, 0),
			sectorRec(t, 8, 128, "FLAT5", "CEIL3_5", 120, 0, 0),
		)},
	}
}

// corruptLevelLumps returns the level E1M2 whose cross-references are
// deliberately broken: a seg pointing at a missing linedef, a subsector
// range beyond the seg sequence, and a linedef side index that is negative
// but not the -1 sentinel.
func corruptLevelLumps(t *testing.T) []lump {
	t.Helper()
	return []lump{
		{"E1M2", nil},
		{"THINGS", nil},
		{"LINEDEFS", linedefRec(t, 0, 0, 0, 0, 0, 0, -5)},
		{"SIDEDEFS", sidedefRec(t, "", "", "", 0)},
		{"VERTEXES", vertexRec(t, 0, 0)},
		{"SEGS", segRec(t, 0, 0, 0, 5, 0, 0)},
		{"SSECTORS", subsectorRec(t, 5, 3)},
		{"NODES", nil},
		{"SECTORS", sectorRec(t, 0, 128, "FLAT14", "CEIL3_5", 100, 0, 0)},
	}
}

// testArchive builds an archive holding the well-formed level and the
// corrupt one.
func testArchive(t *testing.T) *wadlevel.Archive {
	t.Helper()
	lumps := append(testLevelLumps(t), corruptLevelLumps(t)...)
	a, err := wadlevel.NewArchive(buildWAD(t, lumps))
	require.NoError(t, err)
	return a
}

func loadTestLevel(t *testing.T) *wadlevel.Level {
	t.Helper()
	level, err := wadlevel.Load(testArchive(t), "E1M1")
	require.NoError(t, err)
	return level
}

func loadCorruptLevel(t *testing.T) *wadlevel.Level {
	t.Helper()
	level, err := wadlevel.Load(testArchive(t), "E1M2")
	require.NoError(t, err)
	return level
}
