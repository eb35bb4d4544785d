package ot

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeWith(t *testing.T, codec TableCodec, table Table) []byte {
	t.Helper()
	w := NewWriter(0)
	require.NoError(t, codec.Encode(table, w))
	return w.Bytes()
}

// --- gasp ------------------------------------------------------------------

func TestGaspScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otcodec")
	defer teardown()
	//
	gasp := &GaspTable{Version: 1, Ranges: []GaspRange{{MaxPPEM: 8, Behavior: GaspDoGray}}}
	b := encodeWith(t, GaspCodec{}, gasp)
	assert.Equal(t, hexBytes(t, "00 01 00 01 00 08 00 02"), b)
	decoded, err := GaspCodec{}.Decode(NewCursor(b), Context{})
	require.NoError(t, err)
	assert.Equal(t, gasp, decoded)
}

func TestGaspRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		gasp := &GaspTable{Version: uint16(i % 2), Ranges: make([]GaspRange, rnd.Intn(12))}
		for j := range gasp.Ranges {
			gasp.Ranges[j] = GaspRange{MaxPPEM: uint16(rnd.Intn(0x10000)), Behavior: uint16(rnd.Intn(16))}
		}
		decoded, err := GaspCodec{}.Decode(NewCursor(encodeWith(t, GaspCodec{}, gasp)), Context{})
		require.NoError(t, err)
		require.Equal(t, gasp, decoded)
	}
}

func TestGaspErrors(t *testing.T) {
	_, err := GaspCodec{}.Decode(NewCursor(hexBytes(t, "00 02 00 00")), Context{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	_, err = GaspCodec{}.Decode(NewCursor(hexBytes(t, "00 01 00 02 00 08 00 02")), Context{})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	err = GaspCodec{}.Encode(&HMtxTable{}, NewWriter(0))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

// --- hdmx ------------------------------------------------------------------

func TestHdmxScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otcodec")
	defer teardown()
	//
	hdmx := &HdmxTable{Records: []DeviceRecord{{PixelSize: 12, MaxWidth: 10, Widths: []uint8{1, 2, 3}}}}
	b := encodeWith(t, HdmxCodec{}, hdmx)
	// glyphs + 2 = 5 bytes per record, padded to 8
	assert.Equal(t, hexBytes(t, "00 00 00 01 00 00 00 08 0C 0A 01 02 03 00 00 00"), b)
	decoded, err := HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(3))
	require.NoError(t, err)
	assert.Equal(t, hdmx, decoded)
}

func TestHdmxPadding(t *testing.T) {
	for glyphs, pad := range map[int]int{0: 2, 1: 1, 2: 0, 3: 3, 4: 2, 6: 0} {
		assert.Equal(t, pad, hdmxPadding(glyphs), "padding for %d glyphs", glyphs)
		assert.Zero(t, (glyphs+2+hdmxPadding(glyphs))%4)
	}
}

func TestHdmxRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 40; i++ {
		numGlyphs := rnd.Intn(20)
		hdmx := &HdmxTable{Records: make([]DeviceRecord, rnd.Intn(5))}
		for j := range hdmx.Records {
			rec := DeviceRecord{PixelSize: uint8(9 + j), MaxWidth: uint8(rnd.Intn(256)), Widths: make([]uint8, numGlyphs)}
			rnd.Read(rec.Widths)
			hdmx.Records[j] = rec
		}
		b := encodeWith(t, HdmxCodec{}, hdmx)
		decoded, err := HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(numGlyphs))
		require.NoError(t, err)
		require.Equal(t, hdmx, decoded)
	}
}

func TestHdmxInconsistentGlyphCount(t *testing.T) {
	hdmx := &HdmxTable{Records: []DeviceRecord{{PixelSize: 12, MaxWidth: 10, Widths: []uint8{1, 2, 3}}}}
	b := encodeWith(t, HdmxCodec{}, hdmx)
	_, err := HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(7))
	assert.ErrorIs(t, err, ErrFormatMismatch)
	_, err = HdmxCodec{}.Decode(NewCursor(b), Context{})
	assert.ErrorIs(t, err, ErrFormatMismatch, "missing glyph count")
	// truncated: header claims one record, data is missing
	_, err = HdmxCodec{}.Decode(NewCursor(b[:12]), Context{}.WithGlyphCount(3))
	assert.ErrorIs(t, err, ErrFormatMismatch)
	// trailing garbage
	_, err = HdmxCodec{}.Decode(NewCursor(append(b, 0, 0, 0, 0)), Context{}.WithGlyphCount(3))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestHdmxVersionAndShape(t *testing.T) {
	b := hexBytes(t, "00 01 00 00 00 00 00 00")
	_, err := HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(2))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	b = hexBytes(t, "00 00 FF FF 00 00 00 04")
	_, err = HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(2))
	assert.ErrorIs(t, err, ErrFormatMismatch, "negative record count")
	//
	err = HdmxCodec{}.Encode(&HdmxTable{Version: 1}, NewWriter(0))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	ragged := &HdmxTable{Records: []DeviceRecord{
		{PixelSize: 10, Widths: []uint8{1, 2}},
		{PixelSize: 11, Widths: []uint8{1}},
	}}
	err = HdmxCodec{}.Encode(ragged, NewWriter(0))
	assert.ErrorIs(t, err, ErrFormatMismatch)
	//
	empty := encodeWith(t, HdmxCodec{}, &HdmxTable{})
	assert.Equal(t, hexBytes(t, "00 00 00 00 00 00 00 00"), empty)
}

func TestHdmxHugeGlyphCount(t *testing.T) {
	b := hexBytes(t, "00 00 00 01 00 00 00 08 0C 0A 01 02 03 00 00 00")
	for _, n := range []int{math.MaxInt/2 + 1, math.MaxInt, math.MaxInt32} {
		var err error
		assert.NotPanics(t, func() {
			_, err = HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(n))
		})
		assert.ErrorIs(t, err, ErrFormatMismatch, "glyph count %d", n)
	}
}

func TestHdmxEmptyTable(t *testing.T) {
	b := encodeWith(t, HdmxCodec{}, &HdmxTable{})
	for _, glyphs := range []int{0, 3, 4} {
		decoded, err := HdmxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(glyphs))
		require.NoError(t, err)
		hdmx := decoded.(*HdmxTable)
		assert.NotNil(t, hdmx.Records)
		assert.Empty(t, hdmx.Records)
	}
	// an empty table must not be followed by record data
	junk := hexBytes(t, "00 00 00 00 00 00 00 00 01 02 03 04")
	_, err := HdmxCodec{}.Decode(NewCursor(junk), Context{}.WithGlyphCount(3))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

// Tables holding nil slices decode to empty, non-nil slices.
func TestEmptySlicesDecodeNonNil(t *testing.T) {
	gasp, err := GaspCodec{}.Decode(NewCursor(encodeWith(t, GaspCodec{}, &GaspTable{})), Context{})
	require.NoError(t, err)
	assert.Equal(t, &GaspTable{Ranges: []GaspRange{}}, gasp)
	hdmx, err := HdmxCodec{}.Decode(NewCursor(encodeWith(t, HdmxCodec{}, &HdmxTable{})),
		Context{}.WithGlyphCount(2))
	require.NoError(t, err)
	assert.Equal(t, &HdmxTable{Records: []DeviceRecord{}}, hdmx)
	hmtx := &HMtxTable{Metrics: []HMetricRecord{{500, 1}}}
	decoded, err := HMtxCodec{}.Decode(NewCursor(encodeWith(t, HMtxCodec{}, hmtx)),
		Context{}.WithGlyphCount(1).WithLongMetricCount(1))
	require.NoError(t, err)
	assert.Equal(t, []int16{}, decoded.(*HMtxTable).LeftSideBearings)
}

// --- hmtx ------------------------------------------------------------------

func TestHMtxScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otcodec")
	defer teardown()
	//
	hmtx := &HMtxTable{
		Metrics:          []HMetricRecord{{600, 10}, {650, 12}},
		LeftSideBearings: []int16{20, -5},
	}
	b := encodeWith(t, HMtxCodec{}, hmtx)
	assert.Equal(t, hexBytes(t, "02 58 00 0A 02 8A 00 0C 00 14 FF FB"), b)
	ctx := Context{}.WithGlyphCount(4).WithLongMetricCount(2)
	decoded, err := HMtxCodec{}.Decode(NewCursor(b), ctx)
	require.NoError(t, err)
	assert.Equal(t, hmtx, decoded)
	assert.Equal(t, 4, decoded.(*HMtxTable).GlyphCount())
}

func TestHMtxRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		numGlyphs := 1 + rnd.Intn(30)
		long := 1 + rnd.Intn(numGlyphs)
		hmtx := &HMtxTable{
			Metrics:          make([]HMetricRecord, long),
			LeftSideBearings: make([]int16, numGlyphs-long),
		}
		for j := range hmtx.Metrics {
			hmtx.Metrics[j] = HMetricRecord{uint16(rnd.Intn(0x10000)), int16(rnd.Intn(0x10000) - 0x8000)}
		}
		for j := range hmtx.LeftSideBearings {
			hmtx.LeftSideBearings[j] = int16(rnd.Intn(0x10000) - 0x8000)
		}
		ctx := Context{}.WithGlyphCount(numGlyphs).WithLongMetricCount(long)
		decoded, err := HMtxCodec{}.Decode(NewCursor(encodeWith(t, HMtxCodec{}, hmtx)), ctx)
		require.NoError(t, err)
		require.Equal(t, hmtx, decoded)
	}
}

func TestHMtxContext(t *testing.T) {
	b := hexBytes(t, "02 58 00 0A 02 8A 00 0C 00 14 FF FB")
	_, err := HMtxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(2).WithLongMetricCount(3))
	assert.ErrorIs(t, err, ErrFormatMismatch, "more long metrics than glyphs")
	_, err = HMtxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(4))
	assert.ErrorIs(t, err, ErrFormatMismatch, "missing long metric count")
	_, err = HMtxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(9).WithLongMetricCount(2))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	// trailing bytes are tolerated
	tab, err := HMtxCodec{}.Decode(NewCursor(b), Context{}.WithGlyphCount(3).WithLongMetricCount(2))
	require.NoError(t, err)
	assert.Equal(t, []int16{20}, tab.(*HMtxTable).LeftSideBearings)
}

func TestHMtxHugeGlyphCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otcodec")
	defer teardown()
	//
	for _, long := range []int{0, 1, math.MaxInt/2 + 1} {
		ctx := Context{}.WithGlyphCount(math.MaxInt/2 + 1).WithLongMetricCount(long)
		var err error
		assert.NotPanics(t, func() {
			_, err = HMtxCodec{}.Decode(NewCursor(nil), ctx)
		})
		assert.ErrorIs(t, err, ErrOutOfBounds, "long metric count %d", long)
	}
	ctx := Context{}.WithGlyphCount(math.MaxInt).WithLongMetricCount(2)
	_, err := HMtxCodec{}.Decode(NewCursor(hexBytes(t, "02 58 00 0A 02 8A 00 0C")), ctx)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

// --- fpgm/prep -------------------------------------------------------------

func TestProgramRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	for _, tag := range []Tag{TagFpgm, TagPrep} {
		codec := NewProgramCodec(tag)
		for _, n := range []int{0, 1, 7, 300} {
			instr := make([]byte, n)
			rnd.Read(instr)
			prog := &ProgramTable{Tag: tag, Instructions: instr}
			b := encodeWith(t, codec, prog)
			assert.Equal(t, instr, b)
			decoded, err := codec.Decode(NewCursor(b), Context{})
			require.NoError(t, err)
			assert.Equal(t, prog, decoded)
			assert.Equal(t, tag, decoded.NameTag())
		}
	}
}

// --- maxp/hhea -------------------------------------------------------------

func TestMaxPRoundTrip(t *testing.T) {
	cff := &MaxPTable{Version: MaxPVersion05, NumGlyphs: 258}
	b := encodeWith(t, MaxPCodec{}, cff)
	assert.Equal(t, hexBytes(t, "00 00 50 00 01 02"), b)
	decoded, err := MaxPCodec{}.Decode(NewCursor(b), Context{})
	require.NoError(t, err)
	assert.Equal(t, cff, decoded)
	//
	tt := &MaxPTable{Version: MaxPVersion10, NumGlyphs: 3, Limits: &MaxPLimits{
		MaxPoints: 100, MaxContours: 5, MaxZones: 2, MaxStackElements: 512, MaxComponentDepth: 1,
	}}
	b = encodeWith(t, MaxPCodec{}, tt)
	assert.Len(t, b, 32)
	decoded, err = MaxPCodec{}.Decode(NewCursor(b), Context{})
	require.NoError(t, err)
	assert.Equal(t, tt, decoded)
	//
	_, err = MaxPCodec{}.Decode(NewCursor(hexBytes(t, "00 02 00 00 00 03")), Context{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestHHeaRoundTrip(t *testing.T) {
	hhea := &HHeaTable{
		MajorVersion: 1, Ascender: 800, Descender: -200, LineGap: 90,
		AdvanceWidthMax: 1200, MinLeftSideBearing: -50, MinRightSideBearing: -30,
		XMaxExtent: 1100, CaretSlopeRise: 1, NumberOfHMetrics: 2,
	}
	b := encodeWith(t, HHeaCodec{}, hhea)
	require.Len(t, b, 36)
	assert.Equal(t, hexBytes(t, "00 02"), b[34:])
	decoded, err := HHeaCodec{}.Decode(NewCursor(b), Context{})
	require.NoError(t, err)
	assert.Equal(t, hhea, decoded)
	//
	_, err = HHeaCodec{}.Decode(NewCursor(b[:30]), Context{})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	b[1] = 2
	_, err = HHeaCodec{}.Decode(NewCursor(b), Context{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestContextFrom(t *testing.T) {
	ctx := ContextFrom(&MaxPTable{NumGlyphs: 12}, &GaspTable{}, nil, &HHeaTable{NumberOfHMetrics: 4})
	n, ok := ctx.GlyphCount()
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	m, ok := ctx.LongMetricCount()
	assert.True(t, ok)
	assert.Equal(t, 4, m)
	assert.Equal(t, "ctx(glyphs=12, hmetrics=4)", ctx.String())
	assert.Equal(t, "ctx(glyphs=?, hmetrics=?)", Context{}.String())
	//
	_, ok = ContextFrom().GlyphCount()
	assert.False(t, ok)
	assert.True(t, errors.Is(func() error { _, err := Context{}.requireGlyphCount("x"); return err }(), ErrFormatMismatch))
}

func TestOption(t *testing.T) {
	n, ok := Some(7).Unwrap()
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	_, ok = None[int]().Unwrap()
	assert.False(t, ok)
	assert.Equal(t, 3, None[int]().Or(3))
	assert.Equal(t, "8", Map(Some(8), func(i int) string { return "8" }).Or("?"))
	assert.Equal(t, "?", Map(None[int](), func(i int) string { return "x" }).Or("?"))
}
