package http

import (
	"io"
	"log"
	"net/http"

	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"
)

// Page writes the last rendered shelf.
type Page interface {
	WriteHTML(w io.Writer) error
}

// ShelfHandler serves the browser page and its form posts. Every post
// answers with a redirect back to the page.
type ShelfHandler struct {
	svc  BookService
	page Page
}

func NewShelfHandler(svc BookService, page Page) *ShelfHandler {
	return &ShelfHandler{svc: svc, page: page}
}

func (h *ShelfHandler) Show(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.page.WriteHTML(w); err != nil {
		log.Printf("shelf: render page request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		http.Error(w, "cannot render page", http.StatusInternalServerError)
	}
}

func (h *ShelfHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	isComplete := r.PostFormValue("isComplete")
	in := entity.BookInput{
		Title:      r.PostFormValue("title"),
		Author:     r.PostFormValue("author"),
		Year:       entity.ParseYear(r.PostFormValue("year")),
		IsComplete: isComplete == "true" || isComplete == "on",
	}
	if _, err := h.svc.AddBook(r.Context(), in); err != nil {
		h.fail(w, r, "add book", err)
		return
	}
	h.back(w, r)
}

// Search renders the matching books; the page shows them until the next change.
func (h *ShelfHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.svc.Search(r.PostFormValue("q"))
	h.back(w, r)
}

func (h *ShelfHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, true)
}

func (h *ShelfHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, false)
}

func (h *ShelfHandler) setCompletion(w http.ResponseWriter, r *http.Request, v bool) {
	id, ok := parseBookID(r.PathValue("id"))
	if !ok {
		h.back(w, r)
		return
	}
	if _, err := h.svc.SetCompletion(r.Context(), id, v); err != nil {
		h.fail(w, r, "set completion", err)
		return
	}
	h.back(w, r)
}

// Delete removes a book when the browser confirmed it. A declined or unknown
// removal leaves the shelf as it was.
func (h *ShelfHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, ok := parseBookID(r.PathValue("id"))
	if !ok {
		h.back(w, r)
		return
	}
	if _, err := removeBook(r.Context(), h.svc, id, r.PostFormValue("confirm") == "true"); err != nil {
		h.fail(w, r, "remove book", err)
		return
	}
	h.back(w, r)
}

func (h *ShelfHandler) back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ShelfHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("shelf: %s request_id=%s err=%v", op, httpx.RequestIDFrom(r), err)
	http.Error(w, "change applied but not saved", http.StatusInternalServerError)
}
