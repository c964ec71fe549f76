package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"
)

// BookHandler serves the JSON API under /api/books.
type BookHandler struct {
	svc BookService
}

func NewBookHandler(svc BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

type updateBookRequest struct {
	IsComplete *bool `json:"isComplete" validate:"required"`
}

// List returns the books whose title contains q; a blank q lists all.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	books := h.svc.List(query)
	httpx.JSONSuccess(w, r, books, map[string]any{
		"total": len(books),
		"query": strings.TrimSpace(query),
	})
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := entity.BookInput{Year: entity.YearOf(0)}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
			return
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON book")
		return
	}

	book, err := h.svc.AddBook(r.Context(), in)
	if err != nil {
		log.Printf("api: add book request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "Book was added but could not be saved")
		return
	}
	httpx.JSONSuccessCreated(w, r, book)
}

// Update sets the completion flag of one book.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(r.PathValue("id"))
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Book id must be an integer")
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object")
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONErrorWithDetails(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	found, err := h.svc.SetCompletion(r.Context(), id, *req.IsComplete)
	if !found {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found")
		return
	}
	if err != nil {
		log.Printf("api: update book id=%d request_id=%s err=%v", id, httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "Book was updated but could not be saved")
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{"id": id, "isComplete": *req.IsComplete}, nil)
}

// Delete removes a book; the caller confirms with confirm=true.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(r.PathValue("id"))
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Book id must be an integer")
		return
	}

	result, err := removeBook(r.Context(), h.svc, id, r.URL.Query().Get("confirm") == "true")
	switch result {
	case removalNotFound:
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found")
	case removalDeclined:
		httpx.JSONError(w, r, http.StatusPreconditionFailed, "CONFIRMATION_REQUIRED", "Set confirm=true to remove this book")
	default:
		if err != nil {
			log.Printf("api: remove book id=%d request_id=%s err=%v", id, httpx.RequestIDFrom(r), err)
			httpx.JSONError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "Book was removed but could not be saved")
			return
		}
		httpx.JSONSuccessNoContent(w)
	}
}
