package ot

import "fmt"

// --- gasp table ------------------------------------------------------------

// GaspTable (grid-fitting and scan-conversion procedure) contains information
// which describes the preferred rasterization techniques for the font at
// different sizes. Ranges are expected to be sorted by increasing MaxPPEM, with
// the last range ending at 0xFFFF; this is not enforced by the codec.
//
// Decoding always yields a non-nil Ranges slice, empty for a table without
// ranges. Encoding treats nil and empty alike.
type GaspTable struct {
	Version uint16 // 0 or 1
	Ranges  []GaspRange
}

// GaspRange is a range record of table gasp.
type GaspRange struct {
	MaxPPEM  uint16 // upper limit of range, in PPEM
	Behavior uint16 // flags describing desired rasterizer behavior
}

// Flags of GaspRange.Behavior.
const (
	GaspGridfit            uint16 = 0x0001
	GaspDoGray             uint16 = 0x0002
	GaspSymmetricGridfit   uint16 = 0x0004 // version 1 only
	GaspSymmetricSmoothing uint16 = 0x0008 // version 1 only
)

// NameTag returns 'gasp'.
func (t *GaspTable) NameTag() Tag {
	return TagGasp
}

// GaspCodec decodes and encodes table gasp. It needs no context.
//
//	uint16     version
//	uint16     numRanges
//	GaspRange  gaspRanges[numRanges]
type GaspCodec struct{}

// Decode reads a gasp table.
func (GaspCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	version, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if version > 1 {
		return nil, fmt.Errorf("gasp version %d: %w", version, ErrUnsupportedVersion)
	}
	n, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if int(n)*4 > c.Remaining() {
		return nil, fmt.Errorf("gasp: %d ranges need %d bytes, have %d: %w",
			n, int(n)*4, c.Remaining(), ErrOutOfBounds)
	}
	t := &GaspTable{Version: version, Ranges: make([]GaspRange, n)}
	for i := range t.Ranges {
		if t.Ranges[i].MaxPPEM, err = c.Uint16(); err != nil {
			return nil, err
		}
		if t.Ranges[i].Behavior, err = c.Uint16(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("gasp table version %d has %d ranges", version, n)
	return t, nil
}

// Encode writes a gasp table. The number of ranges is derived from t.Ranges.
func (GaspCodec) Encode(t Table, c *Cursor) error {
	gasp, ok := t.(*GaspTable)
	if !ok {
		return tableTypeError("gasp", t)
	}
	if gasp.Version > 1 {
		return fmt.Errorf("gasp version %d: %w", gasp.Version, ErrUnsupportedVersion)
	}
	if len(gasp.Ranges) > 0xffff {
		return fmt.Errorf("gasp: too many ranges (%d): %w", len(gasp.Ranges), ErrFormatMismatch)
	}
	c.PutUint16(gasp.Version)
	c.PutUint16(uint16(len(gasp.Ranges)))
	for _, r := range gasp.Ranges {
		c.PutUint16(r.MaxPPEM)
		c.PutUint16(r.Behavior)
	}
	return nil
}
