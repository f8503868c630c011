// Package xmltree parses an XML document into a small ordered element tree.
//
// The loader walks catalog exports the way a DOM walker would: find a child
// by tag, read an attribute, read the trimmed text. encoding/xml's streaming
// decoder is wrapped once here; non-UTF-8 documents (catalog dumps are often
// latin-1) are handled through an IANA charset lookup.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Node is one element: tag, attributes, the character data directly under
// the element (trimmed), and child elements in document order.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first child element with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first child with the given tag, or "".
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Text
	}
	return ""
}

// ChildrenOf returns the children of the first child with the given tag.
// Missing containers yield an empty slice, so callers can range directly.
func (n *Node) ChildrenOf(tag string) []*Node {
	if c := n.Child(tag); c != nil {
		return c.Children
	}
	return nil
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml: multiple root elements")
				}
				root = n
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xml: no root element")
	}
	return root, nil
}

// ParseFile parses the document at path.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
