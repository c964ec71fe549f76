package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"bookshelf/internal/entity"
)

// Dune is an unfinished sample book.
var Dune = entity.BookInput{
	Title:  "Dune",
	Author: "Frank Herbert",
	Year:   entity.YearOf(1965),
}

// Hobbit is a finished sample book.
var Hobbit = entity.BookInput{
	Title:      "The Hobbit",
	Author:     "J.R.R. Tolkien",
	Year:       entity.YearOf(1937),
	IsComplete: true,
}

// SampleBooks returns a fixed collection with known ids.
func SampleBooks() []entity.Book {
	return []entity.Book{
		{ID: 1001, Title: Dune.Title, Author: Dune.Author, Year: Dune.Year},
		{ID: 1002, Title: Hobbit.Title, Author: Hobbit.Author, Year: Hobbit.Year, IsComplete: true},
	}
}

// NewRequest creates a new HTTP request with a JSON body for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewFormRequest creates a urlencoded form post for testing
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode extracts error.code from a JSON error envelope.
func (r RecordResponse) ErrorCode() string {
	errBody, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}
