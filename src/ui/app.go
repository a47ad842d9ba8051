// Package ui has the root component of the application shell
package ui

import (
	"bytes"
	"html/template"

	"github.com/will-rowe/appshell/src/app"
)

// RootName is the name the App component is registered under
const RootName = "App"

var appTemplate = template.Must(template.New("App").Parse(`<nav class="navbar bg-dark">
	<a class="navbar-brand text-light" href="#">{{.Title}}</a>
	<button class="btn btn-primary" type="button" data-bs-toggle="collapse" data-bs-target="#app-menu">☰</button>
</nav>
<div class="collapse" id="app-menu">
	<ul>{{range .Links}}<li><a href="{{.Href}}">{{.Label}}</a></li>{{end}}</ul>
</div>
<main class="container app-main">
	<h1>{{if .Name}}Hello, {{.Name}}!{{else}}Hello!{{end}}</h1>
	<p class="mt-4">{{.Version}}</p>
</main>`))

// Link is an entry in the App menu
type Link struct {
	Label string
	Href  string
}

// App is the root component: a navbar, a collapsible menu and the main container
type App struct {
	Title   string
	Name    string
	Version string
	Links   []Link
}

// Render returns what to display
func (App *App) Render() (string, error) {
	var buf bytes.Buffer
	if err := appTemplate.Execute(&buf, App); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Import registers the App component definition with a registry, built from the supplied title and version
func Import(registry *app.Registry, title, version string) {
	registry.Import(RootName, func() app.Component {
		return &App{
			Title:   title,
			Version: version,
			Links: []Link{
				{Label: "Home", Href: "#"},
				{Label: "Source", Href: "https://github.com/will-rowe/appshell"},
			},
		}
	})
}
