package presentation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/will-rowe/appshell/src/assets"
)

// recordingSink keeps every bundle it is sent
type recordingSink struct {
	applied []string
	fail    string
}

func (r *recordingSink) ApplyAsset(bundle assets.Bundle) error {
	if bundle.Name == r.fail {
		return errors.New("refused")
	}
	r.applied = append(r.applied, bundle.Name)
	return nil
}

func TestRegisterAssetOrder(t *testing.T) {
	bundles, err := assets.Defaults()
	require.NoError(t, err)
	ctx := NewContext()
	sink := &recordingSink{}
	ctx.Attach(sink)
	for _, b := range bundles {
		require.NoError(t, ctx.RegisterAsset(b))
	}
	styles := ctx.Styles()
	require.Len(t, styles, 2)
	require.Equal(t, "bootstrap.min.css", styles[0].Name)
	require.Equal(t, "global.css", styles[1].Name)
	require.Len(t, ctx.Scripts(), 1)
	require.Equal(t, []string{"bootstrap.min.css", "bootstrap.bundle.min.js", "global.css"}, sink.applied)
}

func TestRegisterAssetIdempotent(t *testing.T) {
	ctx := NewContext()
	sink := &recordingSink{}
	ctx.Attach(sink)
	b := assets.Bundle{Name: "a.css", Kind: assets.Style, Content: []byte("a{}")}
	require.NoError(t, ctx.RegisterAsset(b))
	require.NoError(t, ctx.RegisterAsset(b))
	require.Equal(t, 1, ctx.Len())
	require.Len(t, sink.applied, 1)
	got, ok := ctx.Lookup("a.css")
	require.True(t, ok)
	require.Equal(t, "a{}", string(got.Content))
}

func TestRegisterAssetMalformed(t *testing.T) {
	ctx := NewContext()
	for _, b := range []assets.Bundle{
		{Kind: assets.Style, Content: []byte("x")},
		{Name: "empty.css", Kind: assets.Style},
		{Name: "odd", Kind: assets.Kind(9), Content: []byte("x")},
		{Name: "leaky.css", Kind: assets.Style, Content: []byte("p{}</style><script>alert(1)</script>")},
		{Name: "leaky.js", Kind: assets.Script, Content: []byte("var a = 1;</SCRIPT><p>oops</p>")},
	} {
		err := ctx.RegisterAsset(b)
		require.True(t, errors.Is(err, ErrMalformedBundle), "bundle %q: %v", b.Name, err)
	}
	require.Equal(t, 0, ctx.Len())
}

func TestRegisterAssetSinkFailure(t *testing.T) {
	ctx := NewContext()
	ctx.Attach(&recordingSink{fail: "bad.js"})
	err := ctx.RegisterAsset(assets.Bundle{Name: "bad.js", Kind: assets.Script, Content: []byte("x")})
	require.Error(t, err)
	_, ok := ctx.Lookup("bad.js")
	require.False(t, ok)

	// a failed bundle does not stop the next one
	require.NoError(t, ctx.RegisterAsset(assets.Bundle{Name: "good.css", Kind: assets.Style, Content: []byte("x")}))
	require.Equal(t, 1, ctx.Len())
}
