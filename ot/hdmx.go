package ot

import (
	"fmt"
	"math"
)

// --- hdmx table ------------------------------------------------------------

// HdmxTable (horizontal device metrics) stores integer advance widths scaled
// to particular pixel sizes. Records are expected to be sorted by increasing
// pixel size; this is not enforced by the codec.
//
// Decoding always yields a non-nil Records slice, empty for a table without
// records. Encoding treats nil and empty alike.
type HdmxTable struct {
	Version int16 // must be 0
	Records []DeviceRecord
}

// DeviceRecord holds the advance widths of all glyphs for one pixel size.
// Widths is indexed by glyph ID and has one entry per glyph of the font.
type DeviceRecord struct {
	PixelSize uint8
	MaxWidth  uint8
	Widths    []uint8
}

// NameTag returns 'hdmx'.
func (t *HdmxTable) NameTag() Tag {
	return TagHdmx
}

// HdmxCodec decodes and encodes table hdmx. Decoding needs the glyph count.
//
//	int16         version
//	int16         numRecords
//	int32         sizeDeviceRecord
//	DeviceRecord  records[numRecords]
//
// Each device record is padded with zeros to a multiple of 4 bytes.
type HdmxCodec struct{}

// Dependencies returns 'maxp', which supplies the glyph count.
func (HdmxCodec) Dependencies() []Tag {
	return []Tag{TagMaxP}
}

// hdmxPadding returns the number of padding bytes after a device record for
// numGlyphs glyphs.
func hdmxPadding(numGlyphs int) int {
	return (4 - (numGlyphs+2)%4) % 4
}

// Decode reads an hdmx table. The record size stated in the table has to match
// the glyph count from ctx, and the table must consist of exactly numRecords
// records.
func (HdmxCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	numGlyphs, err := ctx.requireGlyphCount("hdmx")
	if err != nil {
		return nil, err
	}
	version, err := c.Int16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, fmt.Errorf("hdmx version %d: %w", version, ErrUnsupportedVersion)
	}
	numRecords, err := c.Int16()
	if err != nil {
		return nil, err
	}
	if numRecords < 0 {
		return nil, fmt.Errorf("hdmx: negative record count %d: %w", numRecords, ErrFormatMismatch)
	}
	recordSize, err := c.Int32()
	if err != nil {
		return nil, err
	}
	if numRecords == 0 && recordSize == 0 {
		if c.Remaining() != 0 {
			return nil, fmt.Errorf("hdmx: %d bytes following an empty table: %w",
				c.Remaining(), ErrFormatMismatch)
		}
		return &HdmxTable{Version: version, Records: []DeviceRecord{}}, nil
	}
	if numGlyphs > math.MaxInt32-5 {
		return nil, fmt.Errorf("hdmx: glyph count %d exceeds any record size: %w",
			numGlyphs, ErrFormatMismatch)
	}
	padding := hdmxPadding(numGlyphs)
	expected := numGlyphs + 2 + padding
	if int(recordSize) != expected {
		return nil, fmt.Errorf("hdmx: record size is %d, expected %d for %d glyphs: %w",
			recordSize, expected, numGlyphs, ErrFormatMismatch)
	}
	size, err := checkedMulInt(int(numRecords), expected)
	if err != nil {
		return nil, err
	}
	if size != c.Remaining() {
		return nil, fmt.Errorf("hdmx: %d records of size %d need %d bytes, have %d: %w",
			numRecords, expected, size, c.Remaining(), ErrFormatMismatch)
	}
	t := &HdmxTable{Version: version, Records: make([]DeviceRecord, numRecords)}
	for i := range t.Records {
		rec := &t.Records[i]
		if rec.PixelSize, err = c.Uint8(); err != nil {
			return nil, err
		}
		if rec.MaxWidth, err = c.Uint8(); err != nil {
			return nil, err
		}
		if rec.Widths, err = c.Block(numGlyphs); err != nil {
			return nil, err
		}
		if err = c.Skip(padding); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("hdmx table has %d device records for %d glyphs", numRecords, numGlyphs)
	return t, nil
}

// Encode writes an hdmx table. The record size is derived from the width count
// of the first record; all records must have the same number of widths.
// A table without records is written with a record size of 0.
func (HdmxCodec) Encode(t Table, c *Cursor) error {
	hdmx, ok := t.(*HdmxTable)
	if !ok {
		return tableTypeError("hdmx", t)
	}
	if hdmx.Version != 0 {
		return fmt.Errorf("hdmx version %d: %w", hdmx.Version, ErrUnsupportedVersion)
	}
	if len(hdmx.Records) > math.MaxInt16 {
		return fmt.Errorf("hdmx: too many records (%d): %w", len(hdmx.Records), ErrFormatMismatch)
	}
	numGlyphs, padding, recordSize := 0, 0, 0
	if len(hdmx.Records) > 0 {
		numGlyphs = len(hdmx.Records[0].Widths)
		padding = hdmxPadding(numGlyphs)
		recordSize = numGlyphs + 2 + padding
	}
	for i, rec := range hdmx.Records {
		if len(rec.Widths) != numGlyphs {
			return fmt.Errorf("hdmx: record %d has %d widths, record 0 has %d: %w",
				i, len(rec.Widths), numGlyphs, ErrFormatMismatch)
		}
	}
	if recordSize > math.MaxInt32 {
		return fmt.Errorf("hdmx: record size %d: %w", recordSize, ErrFormatMismatch)
	}
	c.PutInt16(hdmx.Version)
	c.PutInt16(int16(len(hdmx.Records)))
	c.PutInt32(int32(recordSize))
	for _, rec := range hdmx.Records {
		c.PutUint8(rec.PixelSize)
		c.PutUint8(rec.MaxWidth)
		c.PutBlock(rec.Widths)
		c.PutZeros(padding)
	}
	return nil
}
