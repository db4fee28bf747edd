// Package minixml provides a minimal response processor built on the
// standard library XML decoder. It keeps the module usable without the tree
// document model; register order makes it the fallback behind the etree
// implementation.
package minixml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// Name is the registry name of this implementation.
const Name = "minixml"

func init() {
	processors.Register(Name, func() processors.Processor { return New() })
}

// Processor decodes responses into a generic node tree.
type Processor struct{}

// New returns a ready-to-use processor.
func New() *Processor { return &Processor{} }

// Parse implements processors.Processor.
func (p *Processor) Parse(r io.Reader) (processors.Document, error) {
	root, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	doc := &Document{root: root}
	if errNode := firstNodeNamed(root, "Error"); errNode != nil {
		return nil, &processors.ServiceError{
			Code:     errNode.childText("Code"),
			Message:  errNode.childText("Message"),
			Document: doc,
		}
	}
	return doc, nil
}

// LoadPaginator implements processors.Processor.
func (p *Processor) LoadPaginator(kind processors.Kind) (processors.PageDescriptor, bool) {
	switch kind {
	case processors.KindItems:
		return processors.PathDescriptor{
			Counter:      "ItemPage",
			CurrentPage:  "//Items/Request/ItemSearchRequest/ItemPage",
			TotalPages:   "//Items/TotalPages",
			TotalResults: "//Items/TotalResults",
			Items:        "//Items/Item",
		}, true
	case processors.KindRelatedItems:
		return processors.PathDescriptor{
			Counter:      "RelatedItemPage",
			CurrentPage:  "//RelatedItemPage",
			TotalPages:   "//RelatedItems/RelatedItemPageCount",
			TotalResults: "//RelatedItems/RelatedItemCount",
			Items:        "//RelatedItems/RelatedItem/Item",
		}, true
	}
	return nil, false
}

// node is one decoded element: local name, accumulated character data and
// child elements. Namespaces are dropped on decode.
type node struct {
	name     string
	text     string
	children []*node
}

func (n *node) childText(name string) string {
	for _, child := range n.children {
		if child.name == name {
			return strings.TrimSpace(child.text)
		}
	}
	return ""
}

func decode(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple document roots")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced end element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	return root, nil
}

// Document wraps a decoded node tree.
type Document struct {
	root *node
}

// FindText implements processors.Document.
func (d *Document) FindText(path string) (string, bool) {
	matches := findAll(d.root, path, 1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.TrimSpace(matches[0].text), true
}

// FindTexts implements processors.Document.
func (d *Document) FindTexts(path string) []string {
	matches := findAll(d.root, path, -1)
	texts := make([]string, len(matches))
	for i, n := range matches {
		texts[i] = strings.TrimSpace(n.text)
	}
	return texts
}

// findAll matches a path of local element names: the first segment matches
// any descendant-or-self node, subsequent segments match direct children.
func findAll(root *node, path string, max int) []*node {
	if root == nil {
		return nil
	}
	path = strings.TrimPrefix(path, "//")
	path = strings.TrimPrefix(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil
	}

	var matches []*node
	var walk func(n *node)
	walk = func(n *node) {
		if max >= 0 && len(matches) >= max {
			return
		}
		if n.name == segments[0] {
			matches = append(matches, descend(n, segments[1:])...)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(root)
	if max >= 0 && len(matches) > max {
		matches = matches[:max]
	}
	return matches
}

func descend(n *node, segments []string) []*node {
	if len(segments) == 0 {
		return []*node{n}
	}
	var matches []*node
	for _, child := range n.children {
		if child.name == segments[0] {
			matches = append(matches, descend(child, segments[1:])...)
		}
	}
	return matches
}

func firstNodeNamed(n *node, name string) *node {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := firstNodeNamed(child, name); found != nil {
			return found
		}
	}
	return nil
}
