//go:build js && wasm
// +build js,wasm

package document

import (
	"fmt"
	"syscall/js"

	"github.com/pkg/errors"
	"github.com/will-rowe/appshell/src/assets"
)

// DOMDocument is the browser's live document
type DOMDocument struct {
	doc js.Value
}

// NewDOMDocument returns the document of the page the wasm binary was loaded into
func NewDOMDocument() *DOMDocument {
	return &DOMDocument{
		doc: js.Global().Get("document"),
	}
}

// Lookup calls getElementById
func (DOMDocument *DOMDocument) Lookup(id string) (MountPoint, bool) {
	el := DOMDocument.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return &domElement{id: id, el: el}, true
}

// ApplyAsset inserts a <style> into the head, or a <script> into the body, with the bundle as its text
func (DOMDocument *DOMDocument) ApplyAsset(bundle assets.Bundle) (err error) {
	defer catch(&err)

	// a page rendered by the server already carries its bundles
	existing := DOMDocument.doc.Call("querySelector", fmt.Sprintf("[%s=%q]", BundleAttr, bundle.Name))
	if !existing.IsNull() {
		return nil
	}
	var parent, el js.Value
	switch bundle.Kind {
	case assets.Style:
		parent = DOMDocument.doc.Get("head")
		el = DOMDocument.doc.Call("createElement", "style")
	case assets.Script:
		parent = DOMDocument.doc.Get("body")
		el = DOMDocument.doc.Call("createElement", "script")
	default:
		return errors.Errorf("can't apply a bundle of kind %v", bundle.Kind)
	}
	if parent.IsNull() || parent.IsUndefined() {
		return errors.Errorf("host document has nowhere to put a %v bundle", bundle.Kind)
	}
	el.Call("setAttribute", BundleAttr, bundle.Name)
	el.Set("textContent", string(bundle.Content))
	parent.Call("appendChild", el)
	return nil
}

// domElement is a MountPoint backed by a DOM element
type domElement struct {
	id string
	el js.Value
}

func (e *domElement) ID() string {
	return e.id
}

// Replace sets innerHTML
func (e *domElement) Replace(markup string) (err error) {
	defer catch(&err)
	e.el.Set("innerHTML", markup)
	return nil
}

// catch turns a panic thrown by a JavaScript call into an error
func catch(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = errors.Wrap(jsErr, "javascript error")
			return
		}
		panic(r)
	}
}
