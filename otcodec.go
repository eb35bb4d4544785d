package otcodec

import (
	"fmt"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otfile"
	"golang.org/x/image/font/sfnt"
)

// FromBinary parses raw OpenType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// The glyph count found in table maxp is cross-checked with the one
// golang.org/x/image/font/sfnt reports; a disagreement, or input sfnt is
// unable to parse, is recorded as a font warning.
func FromBinary(data []byte, opts ...otfile.DecodeOption) (*otfile.Font, error) {
	f, err := otfile.Decode(data, opts...)
	if err != nil {
		return nil, err
	}
	crossCheck(f, data)
	return f, nil
}

// ToBinary encodes a font into raw OpenType bytes.
// Fonts containing a decoded DSIG table cannot be encoded; clients have to
// remove it first, as any modification of the font invalidates the signature.
func ToBinary(f *otfile.Font) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("cannot encode nil font: %w", ot.ErrFormatMismatch)
	}
	return otfile.Encode(f)
}

func crossCheck(f *otfile.Font, data []byte) {
	numGlyphs, ok := f.Context().GlyphCount()
	if !ok {
		f.AddWarning(ot.TagMaxP, "font has no glyph count", 0)
		return
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		tracer().Infof("cannot cross-check glyph count: %v", err)
		f.AddWarning(ot.TagMaxP, fmt.Sprintf("glyph count not cross-checked: %v", err), 0)
		return
	}
	if sf.NumGlyphs() != numGlyphs {
		f.AddWarning(ot.TagMaxP, fmt.Sprintf("maxp states %d glyphs, sfnt reports %d",
			numGlyphs, sf.NumGlyphs()), 0)
	}
}
