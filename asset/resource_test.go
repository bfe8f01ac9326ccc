package asset

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalResource(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(sceneFile, []byte("objects: []"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(sceneFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsRemote() {
		t.Fatal("expected local resource")
	}

	data, err := res.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "objects: []" {
		t.Fatalf("unexpected resource contents %q", string(data))
	}
}

func TestRelativeLocalResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "parts"), 0o755); err != nil {
		t.Fatal(err)
	}
	parent := filepath.Join(dir, "scene.yaml")
	child := filepath.Join(dir, "parts", "blobs.yaml")
	for _, f := range []string{parent, child} {
		if err := os.WriteFile(f, []byte(filepath.Base(f)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res1, err := NewResource(parent, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()

	res2, err := NewResource("parts/blobs.yaml", res1)
	if err != nil {
		t.Fatal(err)
	}
	data, err := res2.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "blobs.yaml" {
		t.Fatalf("expected relative resource to resolve next to its parent; got %q", string(data))
	}
}

func TestHttpResource(t *testing.T) {
	serverHits := 0
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		switch r.URL.Path {
		case "/scenes/main.yaml", "/scenes/extra.yaml":
			w.Write([]byte("OK"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res1, err := NewResource(server.URL+"/scenes/main.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()
	if !res1.IsRemote() {
		t.Fatal("expected remote resource")
	}

	res2, err := NewResource("extra.yaml", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if serverHits != 2 {
		t.Fatalf("expected server to receive 2 requests; got %d", serverHits)
	}

	fetchURL := server.URL + "/scenes/missing.yaml"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchURL, 404)
	_, err = NewResource(fetchURL, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.yaml", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}
