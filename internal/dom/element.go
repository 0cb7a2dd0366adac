package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a single node of a Document.
type Element struct {
	sel *goquery.Selection
	doc *Document
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.sel.Get(0)
}

// Same reports whether e and other are the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Node() == other.Node()
}

func (e *Element) Tag() string {
	return e.Node().Data
}

func (e *Element) ID() string {
	return e.sel.AttrOr("id", "")
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Data returns the value of the data-<name> attribute, or "".
func (e *Element) Data(name string) string {
	return e.sel.AttrOr("data-"+name, "")
}

func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e *Element) Checked() bool  { return e.hasAttr("checked") }
func (e *Element) Disabled() bool { return e.hasAttr("disabled") }
func (e *Element) Hidden() bool   { return e.hasAttr("hidden") }

func (e *Element) SetChecked(v bool)  { e.setBool("checked", v) }
func (e *Element) SetDisabled(v bool) { e.setBool("disabled", v) }
func (e *Element) SetHidden(v bool)   { e.setBool("hidden", v) }

// IsCheckbox reports whether e is an <input type="checkbox">.
func (e *Element) IsCheckbox() bool {
	return e.Tag() == "input" && strings.EqualFold(e.sel.AttrOr("type", ""), "checkbox")
}

// Value returns the value attribute of a form control.
func (e *Element) Value() string {
	return e.sel.AttrOr("value", "")
}

func (e *Element) SetValue(v string) {
	e.sel.SetAttr("value", v)
}

// Text returns the combined text content of e and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() string {
	markup, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return markup
}

// SetInnerHTML replaces the children of e with the parsed markup.
func (e *Element) SetInnerHTML(markup string) {
	e.sel.SetHtml(markup)
}

// Clear removes every child of e.
func (e *Element) Clear() {
	e.sel.Empty()
}

// Find returns the first descendant matching selector, or nil.
func (e *Element) Find(selector string) *Element {
	return e.doc.wrap(e.sel.Find(selector))
}

// FindAll returns every descendant matching selector.
func (e *Element) FindAll(selector string) []*Element {
	return e.doc.wrapAll(e.sel.Find(selector))
}

// Closest returns e or its nearest ancestor matching selector, or nil.
func (e *Element) Closest(selector string) *Element {
	return e.doc.wrap(e.sel.Closest(selector))
}

// ClosestMatch is Closest for a precompiled matcher.
func (e *Element) ClosestMatch(m Matcher) *Element {
	for n := e.Node(); n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m.Match(n) {
			return e.doc.wrapNode(n)
		}
	}
	return nil
}

// ScrollIntoView reports a scroll request to the document's OnScroll callback.
func (e *Element) ScrollIntoView() {
	if e.doc.onScroll != nil {
		e.doc.onScroll(e)
	}
}

func (e *Element) hasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

func (e *Element) setBool(name string, v bool) {
	if v {
		e.sel.SetAttr(name, "")
		return
	}
	e.sel.RemoveAttr(name)
}
