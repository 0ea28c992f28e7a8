package wadlevel

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
)

// Archive represents a WAD data archive: a short header followed by raw
// lumps, indexed by a directory of named entries. An Archive serves lumps
// as sequences of fixed-size records; interpreting them is the level
// loader's job.
type Archive struct {
	r         io.ReadSeeker
	header    Header
	lumpInfos []LumpInfo
	lumpNums  map[string]int
	levels    map[string]int
}

type binHeader struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type Header struct {
	NumLumps     int
	InfoTableOfs int
}

type binLumpInfo struct {
	Filepos int32
	Size    int32
	Name    Name8
}

type LumpInfo struct {
	Name    string
	Filepos int
	Size    int
}

// OpenArchive opens a WAD file and reads its directory into memory.
func OpenArchive(filename string) (*Archive, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	a, err := NewArchive(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return a, nil
}

// NewArchive reads WAD metadata from r. It returns an Archive that can be
// used to locate and decode individual lumps; r must stay open for the
// lifetime of the Archive.
func NewArchive(r io.ReadSeeker) (*Archive, error) {
	logger.Println("Reading WAD directory")

	var bin binHeader
	if err := binary.Read(r, binary.LittleEndian, &bin); err != nil {
		return nil, err
	}
	if magic := string(bin.Magic[:]); magic != "IWAD" && magic != "PWAD" {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	a := &Archive{
		r:      r,
		header: Header{int(bin.NumLumps), int(bin.InfoTableOfs)},
	}
	if err := a.readInfoTables(); err != nil {
		return nil, err
	}
	return a, nil
}

// readInfoTables reads the lump directory and indexes lumps by name. A
// level marker is the lump immediately preceding a THINGS lump.
func (a *Archive) readInfoTables() error {
	if err := a.seek(int64(a.header.InfoTableOfs)); err != nil {
		return err
	}
	lumpNums := map[string]int{}
	levels := map[string]int{}
	lumpInfos := make([]LumpInfo, a.header.NumLumps)
	for i := 0; i < a.header.NumLumps; i++ {
		var bin binLumpInfo
		if err := binary.Read(a.r, binary.LittleEndian, &bin); err != nil {
			return err
		}
		lumpInfo := LumpInfo{bin.Name.Canonical(), int(bin.Filepos), int(bin.Size)}
		if lumpInfo.Name == "THINGS" && i > 0 {
			marker := lumpInfos[i-1]
			levels[marker.Name] = i - 1
		}
		lumpNums[lumpInfo.Name] = i
		lumpInfos[i] = lumpInfo
	}
	a.levels = levels
	a.lumpNums = lumpNums
	a.lumpInfos = lumpInfos
	return nil
}

// Lookup returns the lump index of a named lump.
func (a *Archive) Lookup(name string) (int, bool) {
	num, ok := a.lumpNums[name]
	return num, ok
}

// LevelNames returns a sorted slice of level marker names found in the
// archive.
func (a *Archive) LevelNames() []string {
	result := make([]string, 0, len(a.levels))
	for name := range a.levels {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Close closes the underlying reader when it is closable.
func (a *Archive) Close() error {
	if c, ok := a.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *Archive) seek(offset int64) error {
	off, err := a.r.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	if off != offset {
		return fmt.Errorf("seek failed")
	}
	return nil
}

// ReadRecords decodes the lump at the given index into a sequence of
// fixed-size little-endian records of type T. The lump's byte length must
// be an exact multiple of the record size; a remainder means the lump is
// malformed and the call fails with ErrBadLumpSize.
func ReadRecords[T any](a *Archive, index int) ([]T, error) {
	if index < 0 || index >= len(a.lumpInfos) {
		return nil, fmt.Errorf("%w: lump %d of %d", ErrInvalidIndex, index, len(a.lumpInfos))
	}
	lumpInfo := a.lumpInfos[index]

	var record T
	size := binary.Size(record)
	if size <= 0 {
		return nil, fmt.Errorf("wadlevel: %T is not a fixed-size record", record)
	}
	if lumpInfo.Size%size != 0 {
		return nil, fmt.Errorf("%w: lump %s is %d bytes, record is %d",
			ErrBadLumpSize, lumpInfo.Name, lumpInfo.Size, size)
	}

	if err := a.seek(int64(lumpInfo.Filepos)); err != nil {
		return nil, err
	}
	records := make([]T, lumpInfo.Size/size)
	if err := binary.Read(a.r, binary.LittleEndian, records); err != nil {
		return nil, err
	}
	return records, nil
}
