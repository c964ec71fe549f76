package http

import (
	"net/http"

	"bookshelf/internal/view"
)

// NewRouter registers the browser routes, the JSON API and the probes.
func NewRouter(svc BookService, page Page, pinger Pinger) *http.ServeMux {
	shelf := NewShelfHandler(svc, page)
	books := NewBookHandler(svc)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", Healthz)
	router.HandleFunc("GET /readyz", Readyz(pinger))

	router.HandleFunc("GET /{$}", shelf.Show)
	router.HandleFunc("POST /books", shelf.Add)
	router.HandleFunc("POST /search", shelf.Search)
	router.HandleFunc("POST /books/{id}/complete", shelf.Complete)
	router.HandleFunc("POST /books/{id}/incomplete", shelf.Incomplete)
	router.HandleFunc("POST /books/{id}/delete", shelf.Delete)
	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	router.HandleFunc("GET /api/books", books.List)
	router.HandleFunc("POST /api/books", books.Create)
	router.HandleFunc("PATCH /api/books/{id}", books.Update)
	router.HandleFunc("DELETE /api/books/{id}", books.Delete)

	return router
}
