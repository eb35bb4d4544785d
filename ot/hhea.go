package ot

import "fmt"

// --- HHea table ------------------------------------------------------------

// HHeaTable contains information for horizontal layout.
// NumberOfHMetrics is the number of long metrics in table 'hmtx'.
type HHeaTable struct {
	MajorVersion        uint16 // 1
	MinorVersion        uint16 // 0
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	Reserved            [4]int16
	MetricDataFormat    int16 // 0 for current format
	NumberOfHMetrics    uint16
}

// NameTag returns 'hhea'.
func (t *HHeaTable) NameTag() Tag {
	return TagHHea
}

// HHeaCodec decodes and encodes table hhea, which has a fixed size of 36 bytes.
// It needs no context, but it is the source of the long metric count for 'hmtx'.
type HHeaCodec struct{}

// int16 fields of hhea following AdvanceWidthMax, in table order
func (t *HHeaTable) signedFields() []*int16 {
	return []*int16{
		&t.MinLeftSideBearing, &t.MinRightSideBearing, &t.XMaxExtent,
		&t.CaretSlopeRise, &t.CaretSlopeRun, &t.CaretOffset,
		&t.Reserved[0], &t.Reserved[1], &t.Reserved[2], &t.Reserved[3],
		&t.MetricDataFormat,
	}
}

// Decode reads an hhea table of major version 1.
func (HHeaCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	if c.Remaining() < 36 {
		return nil, fmt.Errorf("hhea table too small: %d bytes (need 36): %w", c.Remaining(), ErrOutOfBounds)
	}
	t := &HHeaTable{}
	var err error
	if t.MajorVersion, err = c.Uint16(); err != nil {
		return nil, err
	}
	if t.MajorVersion != 1 {
		return nil, fmt.Errorf("hhea major version %d: %w", t.MajorVersion, ErrUnsupportedVersion)
	}
	if t.MinorVersion, err = c.Uint16(); err != nil {
		return nil, err
	}
	for _, f := range []*int16{&t.Ascender, &t.Descender, &t.LineGap} {
		if *f, err = c.Int16(); err != nil {
			return nil, err
		}
	}
	if t.AdvanceWidthMax, err = c.Uint16(); err != nil {
		return nil, err
	}
	for _, f := range t.signedFields() {
		if *f, err = c.Int16(); err != nil {
			return nil, err
		}
	}
	if t.NumberOfHMetrics, err = c.Uint16(); err != nil {
		return nil, err
	}
	tracer().Debugf("hhea table has %d long metrics", t.NumberOfHMetrics)
	return t, nil
}

// Encode writes an hhea table.
func (HHeaCodec) Encode(t Table, c *Cursor) error {
	hhea, ok := t.(*HHeaTable)
	if !ok {
		return tableTypeError("hhea", t)
	}
	if hhea.MajorVersion != 1 {
		return fmt.Errorf("hhea major version %d: %w", hhea.MajorVersion, ErrUnsupportedVersion)
	}
	c.PutUint16(hhea.MajorVersion)
	c.PutUint16(hhea.MinorVersion)
	c.PutInt16(hhea.Ascender)
	c.PutInt16(hhea.Descender)
	c.PutInt16(hhea.LineGap)
	c.PutUint16(hhea.AdvanceWidthMax)
	for _, f := range hhea.signedFields() {
		c.PutInt16(*f)
	}
	c.PutUint16(hhea.NumberOfHMetrics)
	return nil
}
