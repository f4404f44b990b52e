// Package web holds the embedded HTML templates and the Fiber view engine
// configured to serve them.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Engine returns a view engine over the embedded templates. Views are
// referenced by base name, e.g. "index", "login", "register".
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
