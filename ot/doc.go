/*
Package ot provides lossless decoding and encoding of individual OpenType font tables.

Intended audience for this package are:

▪︎ font tooling which needs to read a table, change some fields and write it back

▪︎ containers of sfnt data (fonts, font collections, WOFF wrappers), which hand
byte ranges of tables to this package and receive typed values

Package `ot` will not interpret any table of a font. For example, it is not possible to
ask package `ot` for the advance width of a glyph at a given pixel size; clients get
the records of tables 'hmtx' and 'hdmx' and have to do the arithmetic themselves.
From this point of view, `ot` is a low-level package.

# Codecs

Every table kind has a codec, registered for the table's tag in a Registry.
A codec reads from a Cursor and writes to a Cursor:

	reg := ot.DefaultRegistry()
	gasp, err := reg.Decode(ot.T("gasp"), data, ot.Context{})
	…
	out, err := reg.Encode(gasp)

Some tables cannot be decoded from their own bytes alone: 'hmtx' needs the glyph
count from 'maxp' and the number of long metrics from 'hhea', 'hdmx' needs the glyph
count. These values are passed in as a Context, which is a plain value and
is copied into every decode call. It is the caller's responsibility to decode the
producing tables first (package otfile does this for complete fonts).

Table 'DSIG' carries PKCS#7 signed messages. They are parsed by a MessageParser,
but failure to parse a message will never make decoding of the table fail.

# Status

Tables supported: DSIG, fpgm, gasp, hdmx, hhea, hmtx, maxp, prep. Every other table
decodes to a RawTable and is written back verbatim.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otcodec'
func tracer() tracing.Trace {
	return tracing.Select("font.otcodec")
}
