package preview

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed page.html
var pageHTML []byte

// RegisterPage 注册预览页面
func RegisterPage(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(pageHTML)
	})
}
