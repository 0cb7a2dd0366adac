// Package dom is a small mutable document model over goquery. It offers the
// handful of element operations the staging view needs: lookups by id and
// selector, ancestor matching, boolean form state and content replacement.
//
// A Document is not safe for concurrent use. Callers serialize access on a
// single event loop.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Matcher reports whether a node satisfies a compiled selector.
type Matcher interface {
	Match(n *html.Node) bool
}

// Document wraps a parsed HTML document.
type Document struct {
	doc      *goquery.Document
	onScroll func(*Element)
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses markup into a Document.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Compile compiles a CSS selector for use with Element.ClosestMatch.
func Compile(selector string) (Matcher, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	return sel, nil
}

// OnScroll registers the callback receiving scroll-into-view requests.
// There is no viewport in a headless document, so the request is only reported.
func (d *Document) OnScroll(fn func(*Element)) {
	d.onScroll = fn
}

// IDSelector returns a selector matching the element with the given id.
// Unlike "#id" it holds for ids that are not plain CSS identifiers.
func IDSelector(id string) string {
	return fmt.Sprintf("[id=%q]", id)
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.Query(IDSelector(id))
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) *Element {
	return d.wrap(d.doc.Find(selector))
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	return d.wrapAll(d.doc.Find(selector))
}

// Replace swaps the inner content of the element with the given id.
func (d *Document) Replace(id, markup string) (*Element, error) {
	el := d.ByID(id)
	if el == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	el.SetInnerHTML(markup)
	return el, nil
}

func (d *Document) wrap(sel *goquery.Selection) *Element {
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First(), doc: d}
}

func (d *Document) wrapAll(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s, doc: d})
	})
	return elements
}

func (d *Document) wrapNode(n *html.Node) *Element {
	return &Element{sel: goquery.NewDocumentFromNode(n).Selection, doc: d}
}
