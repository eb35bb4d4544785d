package otfile

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/otcodec/ot"
)

// Encode writes f as an sfnt file, using the registry f has been decoded with
// (or the default registry for fonts created with New).
//
// Tables are written in tag order, each starting on a 4-byte boundary and
// padded with zeros. Directory checksums are computed for every table, and if
// the font contains a 'head' table, its checkSumAdjustment is set so that the
// checksum of the whole file is 0xB1B0AFBA.
// Errors are of type *ot.TableError.
func Encode(f *Font) ([]byte, error) {
	reg := f.registry
	if reg == nil {
		reg = ot.DefaultRegistry()
	}
	tags := f.TableTags()
	hdr, err := newHeader(f.SfntVersion, len(tags))
	if err != nil {
		return nil, err
	}
	blobs := make([][]byte, len(tags))
	for i, tag := range tags {
		if blobs[i], err = reg.Encode(f.tables[tag]); err != nil {
			return nil, err
		}
		if uint64(len(blobs[i])) > 0xffffffff {
			return nil, &ot.TableError{Table: tag, Op: "encode",
				Err: fmt.Errorf("table size %d: %w", len(blobs[i]), ot.ErrFormatMismatch)}
		}
	}
	w := ot.NewWriter(12 + 16*len(tags))
	w.PutUint32(hdr.SfntVersion)
	w.PutUint16(hdr.NumTables)
	w.PutUint16(hdr.SearchRange)
	w.PutUint16(hdr.EntrySelector)
	w.PutUint16(hdr.RangeShift)
	offset := 12 + 16*len(tags)
	headOffset := -1
	for i, tag := range tags {
		data := blobs[i]
		sum := Checksum(data)
		if tag == ot.TagHead {
			if len(data) >= headAdjustmentOffset+4 {
				binary.BigEndian.PutUint32(data[headAdjustmentOffset:], 0)
				headOffset = offset
			}
			sum = headChecksum(data)
		}
		w.PutUint32(uint32(tag))
		w.PutUint32(sum)
		w.PutUint32(uint32(offset))
		w.PutUint32(uint32(len(data)))
		offset += padded(len(data))
	}
	for _, data := range blobs {
		w.PutBlock(data)
		w.PutZeros(padded(len(data)) - len(data))
	}
	out := w.Bytes()
	if headOffset >= 0 {
		adjustment := checksumMagic - Checksum(out)
		binary.BigEndian.PutUint32(out[headOffset+headAdjustmentOffset:], adjustment)
	}
	tracer().Debugf("encoded font with %d tables, %d bytes", len(tags), len(out))
	return out, nil
}

func padded(n int) int {
	return (n + 3) &^ 3
}
