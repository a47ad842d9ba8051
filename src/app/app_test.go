package app

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/will-rowe/appshell/src/document"
)

// dummy root components
type hello struct{ renders int }

func (h *hello) Render() (string, error) {
	h.renders++
	return "<h1>hello</h1>", nil
}

type broken struct{}

func (broken) Render() (string, error) { return "", errors.New("boom") }

func TestMount(t *testing.T) {
	doc, err := document.ParseString(`<body><div id="app">old</div></body>`)
	require.NoError(t, err)
	root := &hello{}
	a := New(root, "app")
	require.Equal(t, Unmounted, a.State())
	require.True(t, a.MountedAt().IsZero())

	require.NoError(t, a.Mount(doc))
	require.Equal(t, Mounted, a.State())
	require.False(t, a.MountedAt().IsZero())
	require.Contains(t, doc.String(), `<div id="app"><h1>hello</h1></div>`)

	// the second attempt is rejected and nothing is rendered again
	err = a.Mount(doc)
	require.True(t, errors.Is(err, ErrAlreadyMounted))
	require.Equal(t, 1, root.renders)
	require.Equal(t, Mounted, a.State())
}

func TestMountMissingAttachmentPoint(t *testing.T) {
	doc, err := document.ParseString(`<body><div id="main"></div></body>`)
	require.NoError(t, err)
	root := &hello{}
	a := New(root, "app")
	err = a.Mount(doc)
	require.True(t, errors.Is(err, ErrMountPointNotFound))
	require.Equal(t, Unmounted, a.State())
	require.Equal(t, 0, root.renders)
	require.NotContains(t, doc.String(), "hello")
}

func TestMountRenderFailure(t *testing.T) {
	doc, err := document.ParseString(`<div id="app">keep</div>`)
	require.NoError(t, err)
	a := New(broken{}, "app")
	require.Error(t, a.Mount(doc))
	require.Equal(t, Unmounted, a.State())
	require.Contains(t, doc.String(), "keep")
}

func TestMountNilRoot(t *testing.T) {
	doc, err := document.ParseString(`<div id="app"></div>`)
	require.NoError(t, err)
	require.Error(t, New(nil, "app").Mount(doc))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Import("App", func() Component { return &hello{} })
	r.Import("Nil", func() Component { return nil })
	require.Equal(t, []string{"App", "Nil"}, r.Names())

	c, err := r.Resolve("App")
	require.NoError(t, err)
	require.IsType(t, &hello{}, c)

	_, err = r.Resolve("Missing")
	require.True(t, errors.Is(err, ErrComponentNotFound))
	_, err = r.Resolve("Nil")
	require.True(t, errors.Is(err, ErrComponentNotFound))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unmounted", Unmounted.String())
	require.Equal(t, "mounted", Mounted.String())
}
