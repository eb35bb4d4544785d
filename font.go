/*
Package otcodec is for reading and writing OpenType fonts on the level of
binary font tables.

Decoding and encoding of single tables is done by the codecs in package ot,
the table directory of a font file is handled by package otfile. This package
ties them to golang.org/x/image/font/sfnt, which is used to load fonts and to
cross-check the decoded tables.

We will stick to the following definitions:

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

▪︎ A "table" is one of the top-level data structures of a font file,
identified by a 4-letter tag. An example is 'hmtx'.

# Status

Does not contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otcodec

import (
	"os"

	"github.com/npillmayer/otcodec/otfile"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font'
func tracer() tracing.Trace {
	return tracing.Select("font")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, not safe for concurrent use
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// Tables decodes the font tables of f.
func (f *ScalableFont) Tables(opts ...otfile.DecodeOption) (*otfile.Font, error) {
	return FromBinary(f.Binary, opts...)
}
