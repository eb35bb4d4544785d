package otfile

import (
	"fmt"
	"sort"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/sync/errgroup"
)

// Font is a decoded single-font sfnt file: a set of tables, at most one per tag.
// Tables are owned by the font; decoded tables do not alias the input bytes.
//
// A Font is not safe for concurrent modification.
type Font struct {
	SfntVersion uint32
	tables      map[ot.Tag]ot.Table
	registry    *ot.Registry
	warnings    []ot.FontWarning
}

// DecodeOption guides and influences the decoding of a font.
type DecodeOption int

const (
	VerifyChecksums DecodeOption = iota // check every table against its directory checksum
	Sequential                          // decode tables one at a time
)

// New creates an empty font, to be filled with SetTable. Tables will be encoded
// using the default registry.
func New(sfntVersion uint32) *Font {
	return &Font{
		SfntVersion: sfntVersion,
		tables:      make(map[ot.Tag]ot.Table),
		registry:    ot.DefaultRegistry(),
	}
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
func (f *Font) Table(tag ot.Tag) ot.Table {
	if t, ok := f.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns the tags of all tables of the font, in ascending order.
func (f *Font) TableTags() []ot.Tag {
	tags := make([]ot.Tag, 0, len(f.tables))
	for tag := range f.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SetTable puts t into the font, replacing a table with the same tag.
// Setting a nil table is a no-op.
func (f *Font) SetTable(t ot.Table) {
	if t == nil {
		return
	}
	f.tables[t.NameTag()] = t
}

// RemoveTable removes the table for tag from the font.
func (f *Font) RemoveTable(tag ot.Tag) {
	delete(f.tables, tag)
}

// Context derives the cross-table context from the font's maxp and hhea tables.
func (f *Font) Context() ot.Context {
	return ot.ContextFrom(f.Table(ot.TagMaxP), f.Table(ot.TagHHea))
}

// Warnings returns non-critical issues recorded while decoding the font.
func (f *Font) Warnings() []ot.FontWarning {
	return f.warnings
}

// AddWarning records a non-critical issue with table tag.
func (f *Font) AddWarning(tag ot.Tag, issue string, offset uint32) {
	tracer().Infof("font warning for (%s): %s", tag, issue)
	f.warnings = append(f.warnings, ot.FontWarning{Table: tag, Issue: issue, Offset: offset})
}

// --- Decoding --------------------------------------------------------------

// Decode decodes a font with the codecs of ot.DefaultRegistry.
func Decode(b []byte, opts ...DecodeOption) (*Font, error) {
	return DecodeWith(ot.DefaultRegistry(), b, opts...)
}

// DecodeWith decodes a font using the codecs of reg. Tables without a codec
// become ot.RawTables.
//
// Decoding is done in two phases: tables whose codecs do not depend on other
// tables are decoded first, concurrently. Then the context is derived from maxp
// and hhea, and the remaining tables are decoded concurrently with it.
// The first table error aborts decoding.
func DecodeWith(reg *ot.Registry, b []byte, opts ...DecodeOption) (*Font, error) {
	dir, err := ParseDirectory(b)
	if err != nil {
		return nil, err
	}
	if hasOption(opts, VerifyChecksums) {
		if err := verifyChecksums(dir, b); err != nil {
			return nil, err
		}
	}
	f := &Font{
		SfntVersion: dir.Header.SfntVersion,
		tables:      make(map[ot.Tag]ot.Table, len(dir.Records)),
		registry:    reg,
	}
	var independent, dependent []TableRecord
	for _, rec := range dir.Records {
		if len(reg.Dependencies(rec.Tag)) > 0 {
			dependent = append(dependent, rec)
		} else {
			independent = append(independent, rec)
		}
	}
	sequential := hasOption(opts, Sequential)
	if err := f.decodePhase(b, independent, ot.Context{}, sequential); err != nil {
		return nil, err
	}
	ctx := f.Context()
	tracer().Debugf("phase 1 decoded %d tables, %s", len(independent), ctx)
	if err := f.decodePhase(b, dependent, ctx, sequential); err != nil {
		return nil, err
	}
	f.collectWarnings(dir)
	tracer().Infof("decoded font with %d tables", len(f.tables))
	return f, nil
}

func (f *Font) decodePhase(b []byte, recs []TableRecord, ctx ot.Context, sequential bool) error {
	decoded := make([]ot.Table, len(recs))
	g := new(errgroup.Group)
	if sequential {
		g.SetLimit(1)
	}
	for i, rec := range recs {
		g.Go(func() error {
			t, err := f.registry.Decode(rec.Tag, rec.data(b), ctx)
			if err != nil {
				return err
			}
			decoded[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, t := range decoded {
		f.SetTable(t)
	}
	return nil
}

func (f *Font) collectWarnings(dir *Directory) {
	dsig, ok := f.Table(ot.TagDSIG).(*ot.DSigTable)
	if !ok {
		return
	}
	rec, _ := dir.Record(ot.TagDSIG)
	for _, inx := range dsig.Unparsed() {
		sig := dsig.Signatures[inx]
		f.AddWarning(ot.TagDSIG,
			fmt.Sprintf("signature %d (format %d) has no parsable message", inx, sig.Format),
			rec.Offset+sig.Offset)
	}
}

func verifyChecksums(dir *Directory, b []byte) error {
	for _, rec := range dir.Records {
		data := rec.data(b)
		sum := Checksum(data)
		if rec.Tag == ot.TagHead {
			sum = headChecksum(data)
		}
		if sum != rec.Checksum {
			return &ot.TableError{
				Table: rec.Tag,
				Op:    "verify",
				Err: fmt.Errorf("checksum is 0x%08x, directory states 0x%08x: %w",
					sum, rec.Checksum, ot.ErrFormatMismatch),
			}
		}
	}
	return nil
}

func hasOption(opts []DecodeOption, opt DecodeOption) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}
