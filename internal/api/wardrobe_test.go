package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/styleai/styleai-go/internal/types"
)

func TestUploadWardrobeItemMultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("category"); got != "Footwear" {
			t.Errorf("category = %q", got)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer func() { _ = f.Close() }()
		if header.Filename != "boots.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		b, _ := io.ReadAll(f)
		if string(b) != "png-bytes" {
			t.Errorf("content = %q", b)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 5, "category": "Footwear", "image_url": "https://cdn.example.com/5.png",
		})
	}))
	defer srv.Close()

	item, err := UploadWardrobeItem(context.Background(), srv.Client(), srv.URL,
		types.CategoryFootwear, "boots.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if item.ID != 5 || item.Category != types.CategoryFootwear {
		t.Fatalf("item = %+v", item)
	}
}

func TestDeleteWardrobeItemAcceptsNoContent(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := DeleteWardrobeItem(context.Background(), srv.Client(), srv.URL, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/api/wardrobe/9" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestRemoveBackgroundSendsIDBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body types.RemoveBackgroundRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.ItemIDs) != 3 || body.ItemIDs[0] != 2 {
			t.Errorf("item_ids = %v", body.ItemIDs)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "category": "Tops", "image_url": "u2", "bg_removed_image_url": "c2"},
		})
	}))
	defer srv.Close()

	updated, err := RemoveBackground(context.Background(), srv.Client(), srv.URL, []int64{2, 5, 8})
	if err != nil {
		t.Fatalf("remove background: %v", err)
	}
	if len(updated) != 1 || updated[0].BgRemovedImageURL != "c2" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestListWardrobeDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/wardrobe" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "category": "Tops", "image_url": "u1"},
			{"id": 2, "category": "Dresses", "image_url": "u2", "bg_removed_image_url": "c2"},
		})
	}))
	defer srv.Close()

	items, err := ListWardrobe(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[1].BgRemovedImageURL != "c2" {
		t.Fatalf("items = %+v", items)
	}
}
