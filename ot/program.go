package ot

// --- fpgm and prep tables --------------------------------------------------

// ProgramTable holds the instructions of one of the TrueType program tables
// 'fpgm' (font program) or 'prep' (control value program). The instructions
// are an opaque byte stream for this package; executing them is the job of a
// TrueType interpreter.
type ProgramTable struct {
	Tag          Tag // TagFpgm or TagPrep
	Instructions []byte
}

// NameTag returns the tag the table has been decoded for.
func (t *ProgramTable) NameTag() Tag {
	return t.Tag
}

// ProgramCodec decodes and encodes program tables. The table consists of
// instructions only, its length is the length of the table's byte range.
type ProgramCodec struct {
	tag Tag
}

// NewProgramCodec creates a codec for program table tag, usually one of
// TagFpgm or TagPrep.
func NewProgramCodec(tag Tag) ProgramCodec {
	return ProgramCodec{tag: tag}
}

// Decode consumes all remaining bytes of c. An empty table is valid.
func (pc ProgramCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	instr, err := c.Block(c.Remaining())
	if err != nil {
		return nil, err
	}
	tracer().Debugf("program table %s has %d bytes of instructions", pc.tag, len(instr))
	return &ProgramTable{Tag: pc.tag, Instructions: instr}, nil
}

// Encode writes the instructions verbatim.
func (pc ProgramCodec) Encode(t Table, c *Cursor) error {
	prog, ok := t.(*ProgramTable)
	if !ok {
		return tableTypeError(pc.tag.String(), t)
	}
	c.PutBlock(prog.Instructions)
	return nil
}
