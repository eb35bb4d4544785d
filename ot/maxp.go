package ot

import "fmt"

// --- MaxP table ------------------------------------------------------------

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
// Whenever this value changes, other tables which depend on it should also be updated.
//
// Fonts with CFF data must use Version 0.5 of this table, specifying only the
// NumGlyphs field. Fonts with TrueType outlines must use Version 1.0 of this table,
// where all data is required. For version 0.5, Limits is nil.
type MaxPTable struct {
	Version   uint32 // 0x00005000 or 0x00010000
	NumGlyphs uint16
	Limits    *MaxPLimits
}

// MaxPLimits are the fields of a version 1.0 maxp table.
type MaxPLimits struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// Versions of table maxp.
const (
	MaxPVersion05 uint32 = 0x00005000
	MaxPVersion10 uint32 = 0x00010000
)

// NameTag returns 'maxp'.
func (t *MaxPTable) NameTag() Tag {
	return TagMaxP
}

func (l *MaxPLimits) fields() []*uint16 {
	return []*uint16{
		&l.MaxPoints, &l.MaxContours, &l.MaxCompositePoints, &l.MaxCompositeContours,
		&l.MaxZones, &l.MaxTwilightPoints, &l.MaxStorage, &l.MaxFunctionDefs,
		&l.MaxInstructionDefs, &l.MaxStackElements, &l.MaxSizeOfInstructions,
		&l.MaxComponentElements, &l.MaxComponentDepth,
	}
}

// MaxPCodec decodes and encodes table maxp. It needs no context, but it is
// the source of the glyph count for other tables.
type MaxPCodec struct{}

// Decode reads a maxp table of version 0.5 or 1.0.
func (MaxPCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	t := &MaxPTable{}
	var err error
	if t.Version, err = c.Uint32(); err != nil {
		return nil, err
	}
	if t.Version != MaxPVersion05 && t.Version != MaxPVersion10 {
		return nil, fmt.Errorf("maxp version 0x%08x: %w", t.Version, ErrUnsupportedVersion)
	}
	if t.NumGlyphs, err = c.Uint16(); err != nil {
		return nil, err
	}
	if t.Version == MaxPVersion10 {
		t.Limits = &MaxPLimits{}
		for _, f := range t.Limits.fields() {
			if *f, err = c.Uint16(); err != nil {
				return nil, err
			}
		}
	}
	tracer().Debugf("maxp table has %d glyphs", t.NumGlyphs)
	return t, nil
}

// Encode writes a maxp table. A version 1.0 table without limits is written with
// all limits set to zero.
func (MaxPCodec) Encode(t Table, c *Cursor) error {
	maxp, ok := t.(*MaxPTable)
	if !ok {
		return tableTypeError("maxp", t)
	}
	switch maxp.Version {
	case MaxPVersion05:
		if maxp.Limits != nil {
			return fmt.Errorf("maxp version 0.5 cannot hold limits: %w", ErrFormatMismatch)
		}
	case MaxPVersion10:
	default:
		return fmt.Errorf("maxp version 0x%08x: %w", maxp.Version, ErrUnsupportedVersion)
	}
	c.PutUint32(maxp.Version)
	c.PutUint16(maxp.NumGlyphs)
	if maxp.Version == MaxPVersion10 {
		limits := maxp.Limits
		if limits == nil {
			limits = &MaxPLimits{}
		}
		for _, f := range limits.fields() {
			c.PutUint16(*f)
		}
	}
	return nil
}
