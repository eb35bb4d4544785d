/*
Package otfile reads and writes single-font sfnt files (TrueType and OpenType).

It parses the table directory and hands the bytes of every table to the codecs
of an ot.Registry. Codecs which need values from other tables (hdmx, hmtx) are
run after maxp and hhea have been decoded. Tables within a phase are decoded
concurrently.

Font collections (*.ttc) are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfile

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.otfile'
func tracer() tracing.Trace {
	return tracing.Select("font.otfile")
}
