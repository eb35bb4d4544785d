package ot

import "fmt"

// --- DSIG table ------------------------------------------------------------

// DSigTable is the digital signature table of a font.
//
// Please note that Microsoft has deprecated DSIG and fonts in the wild often
// contain a stub table without any signature. This package decodes DSIG tables,
// but does not write them.
type DSigTable struct {
	Version    uint32 // 0x00000001
	Flags      uint16
	Signatures []SignatureRecord
}

// SignatureRecord is a header entry of table DSIG, together with the signature
// block it points to. Offset is relative to the start of the table.
type SignatureRecord struct {
	Format uint32 // format of the signature; 1 is PKCS#7
	Length uint32 // length of the signature block in bytes
	Offset uint32 // offset of the signature block from the start of the table
	Block  SignatureBlock
}

// SignatureBlock holds the raw signature bytes and, if they could be parsed,
// the signed message. Message is nil if parsing failed or no parser was
// configured.
type SignatureBlock struct {
	Reserved1       uint16
	Reserved2       uint16
	SignatureLength uint32
	Signature       []byte
	Message         *SignedMessage
}

// NameTag returns 'DSIG'.
func (t *DSigTable) NameTag() Tag {
	return TagDSIG
}

// Unparsed returns the indices of signature records whose message could not
// be parsed.
func (t *DSigTable) Unparsed() []int {
	var inx []int
	for i, sig := range t.Signatures {
		if sig.Block.Message == nil {
			inx = append(inx, i)
		}
	}
	return inx
}

// DSigCodec decodes table DSIG.
//
//	uint32           version
//	uint16           numSignatures
//	uint16           flags
//	SignatureRecord  signatureRecords[numSignatures]
//
// with each record consisting of format, length and offset (uint32 each), pointing
// to a signature block
//
//	uint16   reserved1
//	uint16   reserved2
//	uint32   signatureLength
//	uint8    signature[signatureLength]
type DSigCodec struct {
	parser MessageParser
}

// NewDSigCodec creates a DSIG codec which uses parser to interpret the signature
// bytes. parser may be nil, leaving all messages unparsed.
func NewDSigCodec(parser MessageParser) DSigCodec {
	return DSigCodec{parser: parser}
}

// Decode reads a DSIG table. Only malformed header geometry is an error;
// signature bytes which cannot be parsed into a message leave the block's
// Message unset.
func (dc DSigCodec) Decode(c *Cursor, ctx Context) (Table, error) {
	t := &DSigTable{}
	var err error
	if t.Version, err = c.Uint32(); err != nil {
		return nil, err
	}
	n, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if t.Flags, err = c.Uint16(); err != nil {
		return nil, err
	}
	if int(n)*12 > c.Remaining() {
		return nil, fmt.Errorf("DSIG: %d signature records need %d bytes, have %d: %w",
			n, int(n)*12, c.Remaining(), ErrOutOfBounds)
	}
	t.Signatures = make([]SignatureRecord, n)
	for i := range t.Signatures {
		rec := &t.Signatures[i]
		if rec.Format, err = c.Uint32(); err != nil {
			return nil, err
		}
		if rec.Length, err = c.Uint32(); err != nil {
			return nil, err
		}
		if rec.Offset, err = c.Uint32(); err != nil {
			return nil, err
		}
	}
	for i := range t.Signatures {
		rec := &t.Signatures[i]
		if uint64(rec.Offset)+uint64(rec.Length) > uint64(c.Len()) {
			return nil, fmt.Errorf("DSIG: signature block %d [%d:+%d] exceeds table of size %d: %w",
				i, rec.Offset, rec.Length, c.Len(), ErrFormatMismatch)
		}
		sub, err := c.Sub(int(rec.Offset), int(rec.Length))
		if err != nil {
			return nil, err
		}
		if rec.Block, err = dc.decodeBlock(sub); err != nil {
			return nil, fmt.Errorf("DSIG signature block %d: %w", i, err)
		}
	}
	tracer().Debugf("DSIG table has %d signatures, %d unparsed", n, len(t.Unparsed()))
	return t, nil
}

func (dc DSigCodec) decodeBlock(c *Cursor) (SignatureBlock, error) {
	blk := SignatureBlock{}
	var err error
	if blk.Reserved1, err = c.Uint16(); err != nil {
		return blk, err
	}
	if blk.Reserved2, err = c.Uint16(); err != nil {
		return blk, err
	}
	if blk.SignatureLength, err = c.Uint32(); err != nil {
		return blk, err
	}
	if uint64(blk.SignatureLength) > uint64(c.Remaining()) {
		return blk, fmt.Errorf("signature length %d exceeds block: %w", blk.SignatureLength, ErrOutOfBounds)
	}
	if blk.Signature, err = c.Block(int(blk.SignatureLength)); err != nil {
		return blk, err
	}
	blk.Message = parseMessage(dc.parser, blk.Signature)
	return blk, nil
}

// Encode is not supported for DSIG and always returns ErrEncodeUnsupported.
func (DSigCodec) Encode(t Table, c *Cursor) error {
	return fmt.Errorf("DSIG tables are read-only: %w", ErrEncodeUnsupported)
}
