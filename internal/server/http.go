package server

import (
	_ "embed"
	"log"
	"net/http"

	"github.com/go-chi/chi"

	"NovelEngine/internal/novel"
)

//go:generate go run ./cmd/webbuild

/* ------------------------------ Embeds ------------------------------ */

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

/* ------------------------------- HTTP ------------------------------- */

// NewRouter wires the page, the bundled client and the websocket endpoint.
func NewRouter(h *novel.Hub, cfg AppConfig) http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	r.Get("/client.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(jsClient)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	// Story images and music are served from disk.
	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir)))
	r.Get("/assets/*", assets.ServeHTTP)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, cfg, w, r)
	})
	return r
}

func startServer(h *novel.Hub, cfg AppConfig) {
	log.Fatal(http.ListenAndServe(cfg.Addr, NewRouter(h, cfg)))
}
