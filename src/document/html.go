package document

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/will-rowe/appshell/src/assets"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BundleAttr marks the elements that were added for a registered bundle
const BundleAttr = "data-bundle"

// HTMLDocument is a host document held as a parsed HTML tree, used when bootstrapping outside of a browser
type HTMLDocument struct {
	root *html.Node
}

// Parse reads a host document
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse host document")
	}
	return &HTMLDocument{root: root}, nil
}

// ParseString reads a host document from a string
func ParseString(doc string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(doc))
}

// Lookup returns the first element, in document order, whose id matches exactly
func (HTMLDocument *HTMLDocument) Lookup(id string) (MountPoint, bool) {
	if id == "" {
		return nil, false
	}
	n := findNode(HTMLDocument.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
	if n == nil {
		return nil, false
	}
	return &htmlElement{id: id, node: n}, true
}

// ApplyAsset adds a bundle to the document: stylesheets go at the end of <head>, scripts at the end of <body>
func (HTMLDocument *HTMLDocument) ApplyAsset(bundle assets.Bundle) error {
	var parent *html.Node
	var el *html.Node
	switch bundle.Kind {
	case assets.Style:
		parent = findElement(HTMLDocument.root, atom.Head)
		el = &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	case assets.Script:
		parent = findElement(HTMLDocument.root, atom.Body)
		el = &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	default:
		return errors.Errorf("can't apply a bundle of kind %v", bundle.Kind)
	}
	if parent == nil {
		return errors.Errorf("host document has nowhere to put a %v bundle", bundle.Kind)
	}
	if !bundle.Inlinable() {
		return errors.Errorf("bundle %q would close its own %v element", bundle.Name, bundle.Kind)
	}
	el.Attr = []html.Attribute{{Key: BundleAttr, Val: bundle.Name}}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: string(bundle.Content)})
	parent.AppendChild(el)
	return nil
}

// Render writes the document out as HTML
func (HTMLDocument *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, HTMLDocument.root)
}

// String returns the rendered document
func (HTMLDocument *HTMLDocument) String() string {
	var buf bytes.Buffer
	if err := HTMLDocument.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// htmlElement is a MountPoint within an HTMLDocument
type htmlElement struct {
	id   string
	node *html.Node
}

func (e *htmlElement) ID() string {
	return e.id
}

// Replace parses the markup in the context of the element and swaps it in for the current children
func (e *htmlElement) Replace(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return errors.Wrapf(err, "could not parse markup for #%v", e.id)
	}
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	return findNode(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	})
}

// findNode does a depth first walk and returns the first node that matches
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}
