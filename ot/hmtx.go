package ot

import "fmt"

// --- HMtx table ------------------------------------------------------------

// HMtxTable contains metric information for the horizontal layout each of the glyphs in
// the font. Each element in the contained Metrics-array has two parts: the advance width
// and left side bearing. The number of entries is hhea.numberOfHMetrics. In
// a monospaced font, only one entry is required but that entry may not be omitted.
// Optionally, an array of left side bearings follows.
// The corresponding glyphs are assumed to have the same
// advance width as that found in the last entry in the Metrics array. Since there
// must be a left side bearing and an advance width associated with each glyph in the font,
// the number of entries in this array is derived from the total number of glyphs in the
// font minus the value of hhea.numberOfHMetrics.
//
// Neither count is stored in the table itself. Decoded slices are never nil,
// LeftSideBearings is empty if every glyph has a long metric.
type HMtxTable struct {
	Metrics          []HMetricRecord
	LeftSideBearings []int16
}

// HMetricRecord is one long horizontal metric record from table hmtx.
type HMetricRecord struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// NameTag returns 'hmtx'.
func (t *HMtxTable) NameTag() Tag {
	return TagHMtx
}

// GlyphCount is the number of glyphs the table has metrics for.
func (t *HMtxTable) GlyphCount() int {
	return len(t.Metrics) + len(t.LeftSideBearings)
}

// HMtxCodec decodes and encodes table hmtx. Decoding needs the glyph count and
// the number of long metrics.
//
// Dependencies (taken from Apple Developer page about TrueType):
// The value of the numOfLongHorMetrics field is found in the 'hhea' (Horizontal Header)
// table. Fonts that lack an 'hhea' table must not have an 'hmtx' table.
type HMtxCodec struct{}

// Dependencies returns 'maxp' and 'hhea'.
func (HMtxCodec) Dependencies() []Tag {
	return []Tag{TagMaxP, TagHHea}
}

// Decode reads an hmtx table. The counts taken from ctx are trusted; bytes
// following the last left side bearing are ignored.
func (HMtxCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	numGlyphs, err := ctx.requireGlyphCount("hmtx")
	if err != nil {
		return nil, err
	}
	numberOfHMetrics, ok := ctx.LongMetricCount()
	if !ok {
		return nil, fmt.Errorf("hmtx needs numberOfHMetrics from table hhea: %w", ErrFormatMismatch)
	}
	if numberOfHMetrics < 0 || numberOfHMetrics > numGlyphs {
		return nil, fmt.Errorf("invalid numberOfHMetrics %d (numGlyphs=%d): %w",
			numberOfHMetrics, numGlyphs, ErrFormatMismatch)
	}
	// every glyph takes at least 2 bytes
	if numGlyphs > c.Remaining()/2 {
		return nil, fmt.Errorf("hmtx table too small for %d glyphs, have %d bytes: %w",
			numGlyphs, c.Remaining(), ErrOutOfBounds)
	}
	lsbCount := numGlyphs - numberOfHMetrics
	required := numberOfHMetrics*4 + lsbCount*2
	if required > c.Remaining() {
		return nil, fmt.Errorf("hmtx table too small: need %d bytes, have %d: %w",
			required, c.Remaining(), ErrOutOfBounds)
	}
	t := &HMtxTable{
		Metrics:          make([]HMetricRecord, numberOfHMetrics),
		LeftSideBearings: make([]int16, lsbCount),
	}
	for i := range t.Metrics {
		if t.Metrics[i].AdvanceWidth, err = c.Uint16(); err != nil {
			return nil, fmt.Errorf("cannot parse hmtx long metric %d: %w", i, err)
		}
		if t.Metrics[i].LeftSideBearing, err = c.Int16(); err != nil {
			return nil, fmt.Errorf("cannot parse hmtx long metric lsb %d: %w", i, err)
		}
	}
	for i := range t.LeftSideBearings {
		if t.LeftSideBearings[i], err = c.Int16(); err != nil {
			return nil, fmt.Errorf("cannot parse hmtx lsb %d: %w", i, err)
		}
	}
	if c.Remaining() > 0 {
		tracer().Debugf("hmtx table has %d trailing bytes", c.Remaining())
	}
	return t, nil
}

// Encode writes the long metrics followed by the left side bearings.
// No length fields are written.
func (HMtxCodec) Encode(t Table, c *Cursor) error {
	hmtx, ok := t.(*HMtxTable)
	if !ok {
		return tableTypeError("hmtx", t)
	}
	for _, m := range hmtx.Metrics {
		c.PutUint16(m.AdvanceWidth)
		c.PutInt16(m.LeftSideBearing)
	}
	for _, lsb := range hmtx.LeftSideBearings {
		c.PutInt16(lsb)
	}
	return nil
}
