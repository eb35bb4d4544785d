package ot

import "fmt"

// Context carries values from sibling tables which a codec needs to decode
// its own table. It is a plain value: the container computes it from already
// decoded tables and passes a copy into every decode call.
//
// Currently these are
//
//	glyph count          from 'maxp', needed by 'hdmx' and 'hmtx'
//	long metric count    from 'hhea', needed by 'hmtx'
type Context struct {
	glyphCount      Option[int]
	longMetricCount Option[int]
}

// WithGlyphCount returns a copy of ctx with the glyph count set.
func (ctx Context) WithGlyphCount(n int) Context {
	ctx.glyphCount = Some(n)
	return ctx
}

// WithLongMetricCount returns a copy of ctx with the number of long horizontal
// metrics (hhea.numberOfHMetrics) set.
func (ctx Context) WithLongMetricCount(n int) Context {
	ctx.longMetricCount = Some(n)
	return ctx
}

// GlyphCount returns the number of glyphs in the font, if known.
func (ctx Context) GlyphCount() (int, bool) {
	return ctx.glyphCount.Unwrap()
}

// LongMetricCount returns the number of long horizontal metrics, if known.
func (ctx Context) LongMetricCount() (int, bool) {
	return ctx.longMetricCount.Unwrap()
}

func (ctx Context) String() string {
	show := func(n int) string { return fmt.Sprintf("%d", n) }
	return fmt.Sprintf("ctx(glyphs=%s, hmetrics=%s)",
		Map(ctx.glyphCount, show).Or("?"),
		Map(ctx.longMetricCount, show).Or("?"))
}

// ContextFrom derives a context from decoded tables. Tables other than
// 'maxp' and 'hhea' are ignored, as are nil entries.
func ContextFrom(tables ...Table) Context {
	ctx := Context{}
	for _, t := range tables {
		switch t := t.(type) {
		case *MaxPTable:
			if t != nil {
				ctx = ctx.WithGlyphCount(int(t.NumGlyphs))
			}
		case *HHeaTable:
			if t != nil {
				ctx = ctx.WithLongMetricCount(int(t.NumberOfHMetrics))
			}
		}
	}
	return ctx
}

// requireGlyphCount is a helper for codecs: it returns the glyph count or an error
// naming the table which cannot be decoded without it.
func (ctx Context) requireGlyphCount(table string) (int, error) {
	n, ok := ctx.GlyphCount()
	if !ok {
		return 0, fmt.Errorf("%s needs the glyph count from table maxp: %w", table, ErrFormatMismatch)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: invalid glyph count %d: %w", table, n, ErrFormatMismatch)
	}
	return n, nil
}
