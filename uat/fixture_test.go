package uat

import (
	"net/http"
	"net/http/httptest"
)

// Canned OL1A author document, shaped like the live endpoint's answer.
const authorOL1A = `{
  "key": "/authors/OL1A",
  "name": "Sachi Rautroy",
  "personal_name": "Sachi Rautroy",
  "alternate_names": ["Yugashrashta Sachi Routray"],
  "birth_date": "13 May 1916",
  "death_date": "21 August 2004",
  "type": {"key": "/type/author"}
}`

// newFixtureServer serves the author endpoint the way openlibrary.org
// does, so the suite runs hermetically by default.
func newFixtureServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/authors/OL1A.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(authorOL1A))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "notfound", "key": "` + r.URL.Path + `"}`))
	})

	return httptest.NewServer(mux)
}
