// Package etree provides the reference tree-style response processor, built
// on the github.com/beevik/etree document model. Path queries use local
// element names, so documents with and without namespace prefixes behave the
// same.
package etree

import (
	"fmt"
	"io"
	"strings"

	xmltree "github.com/beevik/etree"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// Name is the registry name of this implementation.
const Name = "etree"

func init() {
	processors.Register(Name, func() processors.Processor { return New() })
}

// Processor decodes responses into etree documents.
type Processor struct{}

// New returns a ready-to-use processor.
func New() *Processor { return &Processor{} }

// Parse implements processors.Processor.
func (p *Processor) Parse(r io.Reader) (processors.Document, error) {
	tree := xmltree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("decode response: empty document")
	}

	doc := &Document{tree: tree}
	if errEl := firstElementNamed(root, "Error"); errEl != nil {
		return nil, &processors.ServiceError{
			Code:     childText(errEl, "Code"),
			Message:  childText(errEl, "Message"),
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

// Document wraps a decoded etree document.
type Document struct {
	tree *xmltree.Document
}

// Tree exposes the underlying etree document for callers that want the full
// document model.
func (d *Document) Tree() *xmltree.Document { return d.tree }

// FindText implements processors.Document.
func (d *Document) FindText(path string) (string, bool) {
	matches := findAll(d.tree.Root(), path, 1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.TrimSpace(matches[0].Text()), true
}

// FindTexts implements processors.Document.
func (d *Document) FindTexts(path string) []string {
	matches := findAll(d.tree.Root(), path, -1)
	texts := make([]string, len(matches))
	for i, el := range matches {
		texts[i] = strings.TrimSpace(el.Text())
	}
	return texts
}

// findAll matches a path of local element names against the tree. The first
// segment matches any descendant-or-self element; subsequent segments match
// direct children. A negative max collects every match.
func findAll(root *xmltree.Element, path string, max int) []*xmltree.Element {
	if root == nil {
		return nil
	}
	path = strings.TrimPrefix(path, "//")
	path = strings.TrimPrefix(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil
	}

	var matches []*xmltree.Element
	var walk func(el *xmltree.Element)
	walk = func(el *xmltree.Element) {
		if max >= 0 && len(matches) >= max {
			return
		}
		if el.Tag == segments[0] {
			matches = append(matches, descend(el, segments[1:], max-len(matches))...)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	if max >= 0 && len(matches) > max {
		matches = matches[:max]
	}
	return matches
}

// descend matches the remaining segments against direct children.
func descend(el *xmltree.Element, segments []string, max int) []*xmltree.Element {
	if len(segments) == 0 {
		return []*xmltree.Element{el}
	}
	var matches []*xmltree.Element
	for _, child := range el.ChildElements() {
		if child.Tag != segments[0] {
			continue
		}
		matches = append(matches, descend(child, segments[1:], max-len(matches))...)
		if max >= 0 && len(matches) >= max {
			break
		}
	}
	return matches
}

// firstElementNamed returns the first descendant-or-self element with the
// given local name, ignoring namespace prefixes.
func firstElementNamed(el *xmltree.Element, name string) *xmltree.Element {
	if el.Tag == name {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := firstElementNamed(child, name); found != nil {
			return found
		}
	}
	return nil
}

func childText(el *xmltree.Element, name string) string {
	for _, child := range el.ChildElements() {
		if child.Tag == name {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}
