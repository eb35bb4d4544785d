package otfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/npillmayer/otcodec/ot"
)

// Values for Header.SfntVersion.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000.
// OpenType fonts containing CFF data (version 1 or 2) should use 0x4F54544F ('OTTO',
// when re-interpreted as a Tag). Apple's TrueType reference manual allows
// for 'true', which we accept for reading.
const (
	SfntTrueType uint32 = 0x00010000
	SfntCFF      uint32 = 0x4f54544f // OTTO
	SfntApple    uint32 = 0x74727565 // true
)

// Header is the offset table at the start of a font file.
type Header struct {
	SfntVersion   uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// TableRecord is an entry of the table directory. Offset is relative to the
// start of the font file.
type TableRecord struct {
	Tag      ot.Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Directory is the table directory of a single-font sfnt file.
type Directory struct {
	Header  Header
	Records []TableRecord // sorted by tag
}

// ParseDirectory reads the offset table and the table records of a font.
// Records have to be sorted by tag, start on a 4-byte boundary and lie within b.
func ParseDirectory(b []byte) (*Directory, error) {
	r := bytes.NewReader(b)
	dir := &Directory{}
	if err := binary.Read(r, binary.BigEndian, &dir.Header); err != nil {
		return nil, fmt.Errorf("cannot read font header: %v: %w", err, ot.ErrOutOfBounds)
	}
	tracer().Debugf("header = %v, tag = %x|%s", dir.Header, dir.Header.SfntVersion, ot.Tag(dir.Header.SfntVersion))
	switch dir.Header.SfntVersion {
	case SfntTrueType, SfntCFF, SfntApple:
	default:
		return nil, fmt.Errorf("font type not supported: %x: %w", dir.Header.SfntVersion, ot.ErrUnsupportedVersion)
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	if int(dir.Header.NumTables)*16 > r.Len() {
		return nil, fmt.Errorf("%d table records exceed font size %d: %w",
			dir.Header.NumTables, len(b), ot.ErrOutOfBounds)
	}
	dir.Records = make([]TableRecord, dir.Header.NumTables)
	if err := binary.Read(r, binary.BigEndian, dir.Records); err != nil {
		return nil, fmt.Errorf("cannot read table records: %v: %w", err, ot.ErrOutOfBounds)
	}
	prevTag := ot.Tag(0)
	for i, rec := range dir.Records {
		if i > 0 && rec.Tag <= prevTag {
			return nil, fmt.Errorf("table order: %s follows %s: %w", rec.Tag, prevTag, ot.ErrFormatMismatch)
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 { // "all tables must begin on four byte boundries"
			return nil, fmt.Errorf("table %s: invalid table offset %d: %w", rec.Tag, rec.Offset, ot.ErrFormatMismatch)
		}
		end := uint64(rec.Offset) + uint64(rec.Length)
		if end > uint64(len(b)) {
			return nil, fmt.Errorf("table %s: bounds [%d:%d] exceed font size %d: %w",
				rec.Tag, rec.Offset, end, len(b), ot.ErrOutOfBounds)
		}
	}
	return dir, nil
}

// Record returns the directory entry for tag.
func (dir *Directory) Record(tag ot.Tag) (TableRecord, bool) {
	for _, rec := range dir.Records {
		if rec.Tag == tag {
			return rec, true
		}
	}
	return TableRecord{}, false
}

// data returns the bytes of a table. rec has been bounds checked by ParseDirectory.
func (rec TableRecord) data(b []byte) []byte {
	return b[rec.Offset : rec.Offset+rec.Length]
}

// newHeader computes the binary search fields for a directory of n tables.
func newHeader(sfntVersion uint32, n int) (Header, error) {
	if n > math.MaxUint16 {
		return Header{}, fmt.Errorf("too many tables: %d: %w", n, ot.ErrFormatMismatch)
	}
	h := Header{SfntVersion: sfntVersion, NumTables: uint16(n)}
	if n == 0 {
		return h, nil
	}
	entrySelector := 0
	for 1<<(entrySelector+1) <= n {
		entrySelector++
	}
	h.EntrySelector = uint16(entrySelector)
	h.SearchRange = uint16((1 << entrySelector) * 16)
	h.RangeShift = uint16(n*16 - int(h.SearchRange))
	return h, nil
}

// Checksum computes the table checksum of b: the sum of its big-endian
// uint32 values, with b padded with zeros to a multiple of 4 bytes.
func Checksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var tail [4]byte
		copy(tail[:], b)
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

// headChecksum is the checksum of a 'head' table, which is computed with
// field checkSumAdjustment set to zero.
func headChecksum(b []byte) uint32 {
	sum := Checksum(b)
	if len(b) >= headAdjustmentOffset+4 {
		sum -= binary.BigEndian.Uint32(b[headAdjustmentOffset:])
	}
	return sum
}

// checkSumAdjustment lives at byte 8 of table head.
const headAdjustmentOffset = 8

// checksumMagic is the value the checksum of a complete font file has to sum up to.
const checksumMagic uint32 = 0xb1b0afba
