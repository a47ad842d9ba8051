// Package assets holds the style and behaviour bundles that are registered into the host document before the application is mounted
package assets

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/objconv/json"
)

// DefaultManifest is the name of the manifest bundled with the binary
const DefaultManifest = "static/manifest.json"

//go:embed static
var static embed.FS

// Kind says which global registry of the host document a bundle belongs to
type Kind int

const (
	// Style bundles go into the document's style scope
	Style Kind = iota
	// Script bundles go into the document's script scope
	Script
)

// String returns the manifest spelling of the kind
func (Kind Kind) String() string {
	switch Kind {
	case Style:
		return "style"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// closingTag returns the end tag of the element a bundle of this kind is inlined into
func (Kind Kind) closingTag() []byte {
	switch Kind {
	case Style:
		return []byte("</style")
	case Script:
		return []byte("</script")
	}
	return nil
}

// ParseKind converts a manifest kind into a Kind
func ParseKind(kind string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "style", "css":
		return Style, nil
	case "script", "js":
		return Script, nil
	}
	return 0, errors.Errorf("unknown bundle kind %q", kind)
}

// Bundle is an inert, pre-packaged resource
type Bundle struct {
	Name    string
	Kind    Kind
	Content []byte
}

// Inlinable reports whether the content can sit inside its <style> or <script> element without closing it early
func (Bundle Bundle) Inlinable() bool {
	tag := Bundle.Kind.closingTag()
	return tag != nil && !bytes.Contains(bytes.ToLower(Bundle.Content), tag)
}

// manifest is the on-disk description of an ordered set of bundles
type manifest struct {
	Bundles []manifestEntry `objconv:"bundles"`
}

type manifestEntry struct {
	Name string `objconv:"name"`
	Kind string `objconv:"kind"`
	Path string `objconv:"path"`
}

// Defaults returns the embedded bundles in registration order: base stylesheet, behaviour bundle, application stylesheet
func Defaults() ([]Bundle, error) {
	return ParseManifest(static, DefaultManifest)
}

// LoadManifest reads a manifest from disk, along with every bundle it lists (paths are relative to the manifest)
func LoadManifest(manifestPath string) ([]Bundle, error) {
	return ParseManifest(os.DirFS(filepath.Dir(manifestPath)), filepath.Base(manifestPath))
}

// ParseManifest reads a JSON manifest from fsys and loads the bundles it lists, preserving their order
func ParseManifest(fsys fs.FS, name string) ([]Bundle, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read manifest %v", name)
	}
	m := manifest{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "could not decode manifest %v", name)
	}
	if len(m.Bundles) == 0 {
		return nil, errors.Errorf("manifest %v lists no bundles", name)
	}
	base := path.Dir(name)
	bundles := make([]Bundle, 0, len(m.Bundles))
	for _, entry := range m.Bundles {
		kind, err := ParseKind(entry.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "bundle %q", entry.Name)
		}
		if entry.Path == "" {
			entry.Path = entry.Name
		}
		content, err := fs.ReadFile(fsys, path.Join(base, entry.Path))
		if err != nil {
			return nil, errors.Wrapf(err, "could not read bundle %q", entry.Name)
		}
		if entry.Name == "" {
			entry.Name = path.Base(entry.Path)
		}
		bundles = append(bundles, Bundle{Name: entry.Name, Kind: kind, Content: content})
	}
	return bundles, nil
}
