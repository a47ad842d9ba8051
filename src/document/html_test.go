package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/will-rowe/appshell/src/assets"
)

var hostDoc = `<!DOCTYPE html>
<html>
<head><title>test</title></head>
<body>
<noscript>enable javascript</noscript>
<div id="app"><p>loading</p></div>
<div id="application"></div>
</body>
</html>`

func TestLookup(t *testing.T) {
	doc, err := ParseString(hostDoc)
	require.NoError(t, err)
	mp, ok := doc.Lookup("app")
	require.True(t, ok)
	require.Equal(t, "app", mp.ID())
	if _, ok := doc.Lookup("ap"); ok {
		t.Fatal("ids should match exactly")
	}
	if _, ok := doc.Lookup(""); ok {
		t.Fatal("an empty id should never match")
	}
	if _, ok := doc.Lookup("missing"); ok {
		t.Fatal("found an element that does not exist")
	}
}

func TestReplace(t *testing.T) {
	doc, err := ParseString(hostDoc)
	require.NoError(t, err)
	mp, ok := doc.Lookup("app")
	require.True(t, ok)
	require.NoError(t, mp.Replace(`<nav class="navbar">hi</nav><main>body</main>`))
	out := doc.String()
	require.Contains(t, out, `<div id="app"><nav class="navbar">hi</nav><main>body</main></div>`)
	require.NotContains(t, out, "loading")

	// the sibling is untouched
	require.Contains(t, out, `<div id="application"></div>`)
}

func TestApplyAsset(t *testing.T) {
	doc, err := ParseString(hostDoc)
	require.NoError(t, err)
	require.NoError(t, doc.ApplyAsset(assets.Bundle{Name: "base.css", Kind: assets.Style, Content: []byte("p{color:red}")}))
	require.NoError(t, doc.ApplyAsset(assets.Bundle{Name: "ui.js", Kind: assets.Script, Content: []byte("var a = 1 < 2;")}))
	require.NoError(t, doc.ApplyAsset(assets.Bundle{Name: "app.css", Kind: assets.Style, Content: []byte("p{color:blue}")}))
	require.Error(t, doc.ApplyAsset(assets.Bundle{Name: "x", Kind: assets.Kind(3), Content: []byte("x")}))

	out := doc.String()
	base := strings.Index(out, `<style data-bundle="base.css">p{color:red}</style>`)
	app := strings.Index(out, `<style data-bundle="app.css">p{color:blue}</style>`)
	head := strings.Index(out, "</head>")
	require.True(t, base > 0 && app > base && head > app, "stylesheets should be in <head>, in registration order")

	// script content is raw text and must not be escaped
	script := strings.Index(out, `<script data-bundle="ui.js">var a = 1 < 2;</script>`)
	require.True(t, script > strings.Index(out, `<div id="app">`))
	require.True(t, script < strings.Index(out, "</body>"))
}

func TestApplyAssetClosingTag(t *testing.T) {
	doc, err := ParseString(hostDoc)
	require.NoError(t, err)
	before := doc.String()
	require.Error(t, doc.ApplyAsset(assets.Bundle{Name: "x.css", Kind: assets.Style, Content: []byte("p{}</style><p id=\"app\">")}))
	require.Error(t, doc.ApplyAsset(assets.Bundle{Name: "x.js", Kind: assets.Script, Content: []byte("1</Script ><b>")}))
	require.Equal(t, before, doc.String())

	// the other kind's closing tag is harmless
	require.NoError(t, doc.ApplyAsset(assets.Bundle{Name: "ok.css", Kind: assets.Style, Content: []byte("a::after{content:'</script>'}")}))
	reparsed, err := ParseString(doc.String())
	require.NoError(t, err)
	require.Equal(t, doc.String(), reparsed.String())
}

func TestFragmentDocument(t *testing.T) {
	// the parser synthesises <head> and <body> for a bare fragment
	doc, err := ParseString(`<div id="app"></div>`)
	require.NoError(t, err)
	require.NoError(t, doc.ApplyAsset(assets.Bundle{Name: "a.css", Kind: assets.Style, Content: []byte("a{}")}))
	_, ok := doc.Lookup("app")
	require.True(t, ok)
}
