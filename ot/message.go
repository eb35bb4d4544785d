package ot

import (
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/smallstep/pkcs7"
)

// SignedMessage is the result of parsing the signature bytes of a DSIG
// signature block. For signature format 1 this is a PKCS#7 SignedData
// structure (DER encoded).
//
// The signature is not verified.
type SignedMessage struct {
	Content      []byte              // signed content, usually empty (detached signature)
	Certificates []*x509.Certificate // certificates contained in the message
	SignerCount  int                 // number of signer infos
	p7           *pkcs7.PKCS7
}

// PKCS7 returns the parsed message for clients which want to verify the
// signature. May be nil if the message has been created by a parser other than
// PKCS7Parser.
func (m *SignedMessage) PKCS7() *pkcs7.PKCS7 {
	if m == nil {
		return nil
	}
	return m.p7
}

// MessageParser interprets the signature bytes of a DSIG signature block.
type MessageParser interface {
	ParseMessage(b []byte) (*SignedMessage, error)
}

// PKCS7Parser parses signature bytes as BER/DER encoded PKCS#7 signed data.
type PKCS7Parser struct{}

var errEmptyMessage = errors.New("empty signed message")

// ParseMessage parses b as PKCS#7.
func (PKCS7Parser) ParseMessage(b []byte) (*SignedMessage, error) {
	if len(b) == 0 {
		return nil, errEmptyMessage
	}
	p7, err := pkcs7.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("cannot parse PKCS#7 message: %w", err)
	}
	return &SignedMessage{
		Content:      p7.Content,
		Certificates: p7.Certificates,
		SignerCount:  len(p7.Signers),
		p7:           p7,
	}, nil
}

// parseMessage runs the secondary parse of a signature block. It never fails:
// a message which cannot be parsed results in nil. A panicking parser is
// treated like a failing one.
func parseMessage(parser MessageParser, b []byte) (msg *SignedMessage) {
	if parser == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("DSIG message parser panicked: %v", r)
			msg = nil
		}
	}()
	msg, err := parser.ParseMessage(b)
	if err != nil {
		tracer().Infof("DSIG signature block left unparsed: %v", err)
		return nil
	}
	return msg
}
