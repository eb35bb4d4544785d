package ot

import (
	"fmt"
	"sort"
	"sync"
)

// Table represents one decoded OpenType font table.
//
// Every table kind supported by this package has its own concrete type, e.g.
// *GaspTable or *HMtxTable. Clients switch on the type or use NameTag to find out
// which table they hold:
//
//	switch t := table.(type) {
//	case *ot.HMtxTable:
//	    …
//	}
type Table interface {
	NameTag() Tag // the 4-letter name of the table
}

// TableCodec is the decode/encode contract every table kind implements.
//
// Decode reads a table from c, which covers exactly the byte range of the table.
// Encode appends the binary representation of t to c. Codecs do not keep state
// between calls and may be used from several goroutines at once.
type TableCodec interface {
	Decode(c *Cursor, ctx Context) (Table, error)
	Encode(t Table, c *Cursor) error
}

// Dependent is implemented by codecs which need values from a Context.
// Dependencies lists the tables these values are taken from. Containers use it to
// decode the producing tables first.
type Dependent interface {
	Dependencies() []Tag
}

// --- Registry --------------------------------------------------------------

// Registry maps table tags to codecs. It is used by containers to dispatch
// decoding and encoding per table. Registering is safe for concurrent use, but
// usually all codecs are registered before the first table gets decoded.
type Registry struct {
	mx     sync.RWMutex
	codecs map[Tag]TableCodec
}

// NewRegistry creates an empty registry. Every table decoded with an empty
// registry will become a RawTable.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[Tag]TableCodec)}
}

// DefaultRegistry creates a registry with codecs for all tables supported by
// this package. DSIG messages will be parsed with a PKCS7Parser.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(TagGasp, GaspCodec{})
	reg.Register(TagHdmx, HdmxCodec{})
	reg.Register(TagHMtx, HMtxCodec{})
	reg.Register(TagFpgm, NewProgramCodec(TagFpgm))
	reg.Register(TagPrep, NewProgramCodec(TagPrep))
	reg.Register(TagDSIG, NewDSigCodec(PKCS7Parser{}))
	reg.Register(TagMaxP, MaxPCodec{})
	reg.Register(TagHHea, HHeaCodec{})
	return reg
}

// Register sets the codec for a tag, replacing a codec possibly registered before.
// Registering a nil codec removes the tag from the registry.
func (reg *Registry) Register(tag Tag, codec TableCodec) {
	reg.mx.Lock()
	defer reg.mx.Unlock()
	if codec == nil {
		delete(reg.codecs, tag)
		return
	}
	reg.codecs[tag] = codec
}

// Codec returns the codec registered for tag.
func (reg *Registry) Codec(tag Tag) (TableCodec, bool) {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	c, ok := reg.codecs[tag]
	return c, ok
}

// Tags returns the tags of all registered codecs, in ascending order.
func (reg *Registry) Tags() []Tag {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	tags := make([]Tag, 0, len(reg.codecs))
	for tag := range reg.codecs {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Dependencies returns the tables a tag's codec needs a context from, or nil.
func (reg *Registry) Dependencies(tag Tag) []Tag {
	if c, ok := reg.Codec(tag); ok {
		if dep, ok := c.(Dependent); ok {
			return dep.Dependencies()
		}
	}
	return nil
}

// Decode decodes the bytes of table tag. If no codec is registered for tag,
// a RawTable holding a copy of b is returned.
// Errors are of type *TableError.
func (reg *Registry) Decode(tag Tag, b []byte, ctx Context) (Table, error) {
	codec, ok := reg.Codec(tag)
	if !ok {
		tracer().Debugf("no codec for table (%s), will not be interpreted", tag)
		return NewRawTable(tag, b), nil
	}
	tracer().Debugf("decoding table (%s) of size %d, %s", tag, len(b), ctx)
	t, err := codec.Decode(NewCursor(b), ctx)
	if err != nil {
		tracer().Errorf("cannot decode table (%s): %v", tag, err)
		return nil, wrapTableError(tag, "decode", err)
	}
	return t, nil
}

// Encode encodes t with the codec registered for its tag. Raw tables are
// written verbatim.
// Errors are of type *TableError.
func (reg *Registry) Encode(t Table) ([]byte, error) {
	if t == nil {
		return nil, wrapTableError(0, "encode", fmt.Errorf("table is nil: %w", ErrFormatMismatch))
	}
	tag := t.NameTag()
	if raw, ok := t.(*RawTable); ok {
		return append([]byte(nil), raw.Data...), nil
	}
	codec, ok := reg.Codec(tag)
	if !ok {
		return nil, wrapTableError(tag, "encode", fmt.Errorf("no codec registered: %w", ErrFormatMismatch))
	}
	c := NewWriter(64)
	if err := codec.Encode(t, c); err != nil {
		tracer().Errorf("cannot encode table (%s): %v", tag, err)
		return nil, wrapTableError(tag, "encode", err)
	}
	return c.Bytes(), nil
}

// --- Raw table -------------------------------------------------------------

// RawTable is a table which is not interpreted by this package.
// Its data is a copy of the table's bytes.
type RawTable struct {
	Tag  Tag
	Data []byte
}

// NewRawTable creates a raw table holding a copy of b.
func NewRawTable(tag Tag, b []byte) *RawTable {
	return &RawTable{Tag: tag, Data: append([]byte(nil), b...)}
}

// NameTag returns the 4-letter name of the table.
func (t *RawTable) NameTag() Tag {
	return t.Tag
}

// tableTypeError is returned by codecs which are handed a table of the wrong type.
func tableTypeError(want string, t Table) error {
	return fmt.Errorf("cannot encode %T as table %s: %w", t, want, ErrFormatMismatch)
}
