package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	bundles, err := Defaults()
	require.NoError(t, err)
	require.Len(t, bundles, 3)

	// base stylesheet first, behaviour bundle second, application stylesheet last
	expected := []struct {
		name string
		kind Kind
	}{
		{"bootstrap.min.css", Style},
		{"bootstrap.bundle.min.js", Script},
		{"global.css", Style},
	}
	for i, b := range bundles {
		require.Equal(t, expected[i].name, b.Name)
		require.Equal(t, expected[i].kind, b.Kind)
		require.NotEmpty(t, b.Content)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("CSS")
	require.NoError(t, err)
	require.Equal(t, Style, k)
	k, err = ParseKind(" script ")
	require.NoError(t, err)
	require.Equal(t, Script, k)
	_, err = ParseKind("font")
	require.Error(t, err)
	require.Equal(t, "unknown", Kind(7).String())
}

func TestInlinable(t *testing.T) {
	require.True(t, Bundle{Name: "a.css", Kind: Style, Content: []byte("a{content:'</script>'}")}.Inlinable())
	require.False(t, Bundle{Name: "a.css", Kind: Style, Content: []byte("a{}</STYLE><p>x")}.Inlinable())
	require.True(t, Bundle{Name: "a.js", Kind: Script, Content: []byte(`var s = "<\/script>";`)}.Inlinable())
	require.False(t, Bundle{Name: "a.js", Kind: Script, Content: []byte(`var s = "</script>";`)}.Inlinable())
	require.False(t, Bundle{Name: "x", Kind: Kind(7), Content: []byte("x")}.Inlinable())

	bundles, err := Defaults()
	require.NoError(t, err)
	for _, b := range bundles {
		require.True(t, b.Inlinable(), b.Name)
	}
}

func TestParseManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"site/manifest.json": {Data: []byte(`{"bundles":[{"name":"a.css","kind":"style"},{"kind":"js","path":"js/b.js"}]}`)},
		"site/a.css":         {Data: []byte("a{}")},
		"site/js/b.js":       {Data: []byte("void 0")},
	}
	bundles, err := ParseManifest(fsys, "site/manifest.json")
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	require.Equal(t, "a.css", bundles[0].Name)
	require.Equal(t, "b.js", bundles[1].Name)
	require.Equal(t, Script, bundles[1].Kind)
	require.Equal(t, "void 0", string(bundles[1].Content))
}

func TestParseManifestErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.json":   {Data: []byte(`{"bundles":[]}`)},
		"badkind.json": {Data: []byte(`{"bundles":[{"name":"x","kind":"font"}]}`)},
		"missing.json": {Data: []byte(`{"bundles":[{"name":"gone.css","kind":"style"}]}`)},
		"broken.json":  {Data: []byte(`{"bundles":`)},
	}
	for _, name := range []string{"empty.json", "badkind.json", "missing.json", "broken.json", "nope.json"} {
		if _, err := ParseManifest(fsys, name); err == nil {
			t.Fatalf("expected an error for %v", name)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.json"), []byte(`{"bundles":[{"name":"only.css","kind":"style"}]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.css"), []byte("p{}"), 0644))
	bundles, err := LoadManifest(filepath.Join(dir, "site.json"))
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	require.Equal(t, "p{}", string(bundles[0].Content))
}
