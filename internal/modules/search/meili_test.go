package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMeiliSearchParsesHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/articles/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		io.WriteString(w, `{"hits":[
			{"id":"a1","title":"First","description":"d","slug":"first","publish_year":2026},
			{"id":"a2","title":"Second"}
		]}`)
	}))
	defer srv.Close()

	client := newMeiliClient(srv.URL, "secret", "articles")
	results, err := client.Search("first", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Slug != "first" || results[0].PublishYear != 2026 {
		t.Errorf("first hit = %+v", results[0])
	}
	if results[1].ID != "a2" {
		t.Errorf("second hit = %+v", results[1])
	}
}

func TestMeiliEnsureSettings(t *testing.T) {
	var gotMethod string
	var gotBody map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"taskUid":1}`)
	}))
	defer srv.Close()

	client := newMeiliClient(srv.URL, "", "articles")
	if err := client.EnsureSettings(); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	attrs := gotBody["searchableAttributes"]
	if len(attrs) == 0 || attrs[0] != "title" || attrs[len(attrs)-1] != "content" {
		t.Errorf("searchableAttributes = %v", attrs)
	}
}

func TestMeiliErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"index not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := newMeiliClient(srv.URL, "", "articles")
	if _, err := client.Search("x", 5); err == nil {
		t.Fatal("want error on 404 response")
	}
}
