package buildvalues

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	// RootElement is the document element wrapping every exported item.
	RootElement = "BuildValues"
	// ItemElement wraps a single exported name/value pair.
	ItemElement = "Item"
	// NameElement holds an item's name.
	NameElement = "Name"
	// ValueElement holds an item's value text.
	ValueElement = "Value"

	// header is written verbatim; [xml.Header] declares no encoding.
	header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

	indent = "  "
)

// Document is an ordered collection of values ready for serialization.
type Document struct {
	Items []NamedValue
}

// NewDocument wraps items in a [Document]. Item order is preserved all the
// way into the serialized output.
func NewDocument(items []NamedValue) *Document {
	return &Document{Items: items}
}

// Bytes serializes the document and returns the exact artifact content:
// an XML declaration, the root element, and one item element per value with
// two-space indentation. Literal values become CDATA sections, with any
// "]]>" occurrences split across adjacent sections to keep the document
// well-formed. Escaped values use standard entity escaping. Names and values
// that are not valid UTF-8, or that contain characters XML cannot carry, are
// rejected with [ErrEncoding].
func (d *Document) Bytes() ([]byte, error) {
	for i, item := range d.Items {
		if err := checkText(item.Name); err != nil {
			return nil, fmt.Errorf("%w: item %d: name: %w", ErrEncoding, i, err)
		}

		if err := checkText(item.Value); err != nil {
			return nil, fmt.Errorf("%w: item %d (%s): value: %w", ErrEncoding, i, item.Name, err)
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString(header)

	enc := xml.NewEncoder(buf)
	enc.Indent("", indent)

	if err := enc.Encode(newXMLDocument(d.Items)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// checkText validates that s can be carried verbatim in an XML 1.0
// document: valid UTF-8 with every rune in the Char production.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return errors.New("not valid UTF-8")
	}

	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U is not allowed in XML", r)
		}
	}

	return nil
}

// isXMLChar reports whether r matches the XML 1.0 Char production. Controls
// other than tab, newline and carriage return are excluded, as are the
// permanent noncharacters U+FFFE and U+FFFF.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// Encode writes the serialized document to w.
func (d *Document) Encode(w io.Writer) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

type xmlDocument struct {
	XMLName xml.Name  `xml:"BuildValues"`
	Items   []xmlItem `xml:"Item"`
}

type xmlItem struct {
	Name  string      `xml:"Name"`
	Value encodedText `xml:"Value"`
}

func newXMLDocument(items []NamedValue) xmlDocument {
	doc := xmlDocument{Items: make([]xmlItem, 0, len(items))}

	for _, item := range items {
		doc.Items = append(doc.Items, xmlItem{
			Name:  item.Name,
			Value: encodedText{text: item.Value, escaped: item.Escaped},
		})
	}

	return doc
}

// encodedText emits CDATA by default and switches to entity escaping when
// escaped is set.
type encodedText struct {
	text    string
	escaped bool
}

var _ xml.Marshaler = encodedText{}

func (t encodedText) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if t.escaped {
		return e.EncodeElement(t.text, start)
	}

	return e.EncodeElement(struct {
		Text string `xml:",cdata"`
	}{Text: t.text}, start)
}
