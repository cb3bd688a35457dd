// Package xmltree decodes XML documents into a minimal element tree.
//
// The tree keeps element names, attributes, character data, and child order,
// which is all the gantry configuration surface needs. Comments, processing
// instructions, and directives are discarded during decoding.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedDocument indicates the input is not a single well-formed XML
// document.
var ErrMalformedDocument = errors.New("malformed document")

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a decoded document.
type Node struct {
	// Name is the element's local name.
	Name string
	// Text is the concatenated character data directly under the element,
	// including CDATA sections. Surrounding whitespace is preserved.
	Text string
	// Attrs holds the element's attributes in document order.
	Attrs []Attr
	// Children holds the element's child elements in document order.
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Element returns the first child element with the given name.
func (n *Node) Element(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// Elements returns all child elements with the given name, in document order.
func (n *Node) Elements(name string) []*Node {
	var nodes []*Node

	for _, c := range n.Children {
		if c.Name == name {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

// Decode reads a single XML document from r and returns its root element.
func Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedDocument)
			}

			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}

			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}

			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				// The tokenizer permits text around the root element.
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("%w: text outside root element", ErrMalformedDocument)
				}

				continue
			}

			cur := stack[len(stack)-1]
			cur.Text += string(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	return root, nil
}
