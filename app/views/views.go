// Package views embeds the server-rendered HTML templates. The storefront
// is a thin shell over the JSON catalogue API; the admin pages carry the
// session-keepalive JavaScript that drives the refresh and timeout polls.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates holds every parsed page template, keyed by filename.
var Templates = template.Must(template.ParseFS(files, "*.html"))
