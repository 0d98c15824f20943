package jdb

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const postsDocument = `{
    "posts": [
        {
            "id": 1,
            "title": "Lorem ipsum dolor sit amet",
            "author": "Rodrigo"
        },
        {
            "id": 2,
            "title": "Duis quis arcu mi",
            "author": "Rodrigo"
        }
    ],
    "comments": [
        {
            "id": 1,
            "post_id": 1,
            "comment": "Pellentesque id orci sodales"
        },
        {
            "id": 2,
            "post_id": 2,
            "comment": "Quisque velit tellus"
        }
    ],
    "embed-resources": {
        "posts": ["comments"]
    },
    "_hidden": []
}`

func openTestDatabase(t *testing.T, content string) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestOpenInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte("this is not json"), 0666); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestOpenOrCreateMakesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "database.json")
	db, err := OpenOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file was not created: %v", err)
	}
}

func TestFromUnknownCollection(t *testing.T) {
	db := openTestDatabase(t, postsDocument)
	_, err := db.From("albums")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFromHiddenCollection(t *testing.T) {
	db := openTestDatabase(t, postsDocument)
	for _, name := range []string{"_hidden", "embed-resources"} {
		if _, err := db.From(name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("From(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestCollectionsSkipReserved(t *testing.T) {
	db := openTestDatabase(t, postsDocument)
	names := db.Collections()
	if len(names) != 2 || names[0] != "posts" || names[1] != "comments" {
		t.Fatalf("unexpected collections: %v", names)
	}
}

func TestEmbedResources(t *testing.T) {
	db := openTestDatabase(t, postsDocument)
	spec := db.EmbedResources()
	if children := spec["posts"]; len(children) != 1 || children[0] != "comments" {
		t.Fatalf("unexpected embed spec: %v", spec)
	}
}

func TestEmbedResourcesAbsent(t *testing.T) {
	db := openTestDatabase(t, `{"posts": []}`)
	if spec := db.EmbedResources(); len(spec) != 0 {
		t.Fatalf("expected empty spec, got %v", spec)
	}
}

func TestForeignKey(t *testing.T) {
	db := openTestDatabase(t, postsDocument)
	if fk := db.ForeignKey("posts"); fk != "post_id" {
		t.Fatalf("unexpected foreign key: %s", fk)
	}
	if fk := db.ForeignKey("categories"); fk != "category_id" {
		t.Fatalf("unexpected foreign key: %s", fk)
	}
}

func TestRoundTripPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(`{"posts": []}`), 0666); err != nil {
		t.Fatal(err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	repo, err := db.From("posts")
	if err != nil {
		t.Fatal(err)
	}
	data := NewRecord()
	data.Set("title", "Lorem ipsum")
	data.Set("author", "Rodrigo")
	saved, err := repo.Save(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	repo, err = reopened.From("posts")
	if err != nil {
		t.Fatal(err)
	}
	record, ok := repo.Find(saved.ID())
	if !ok {
		t.Fatal("saved record not found after reopen")
	}
	for _, field := range []string{"id", "title", "author"} {
		want, _ := saved.Get(field)
		got, ok := record.Get(field)
		if !ok {
			t.Fatalf("field %s missing after reopen", field)
		}
		ws, _ := toString(want)
		gs, _ := toString(got)
		if ws != gs {
			t.Fatalf("field %s = %v, want %v", field, got, want)
		}
	}
}

func TestFlushWritesPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(`{"posts": []}`), 0666); err != nil {
		t.Fatal(err)
	}
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	repo, _ := db.From("posts")
	data := NewRecord()
	data.Set("title", "first")
	if _, err := repo.Save(data); err != nil {
		t.Fatal(err)
	}
	db.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if !strings.Contains(text, "\n    \"posts\": [") {
		t.Fatalf("document is not indented with four spaces:\n%s", text)
	}
	if !strings.Contains(text, "\"id\": 1") {
		t.Fatalf("record id missing from document:\n%s", text)
	}
}

func TestFlushPreservesFieldOrder(t *testing.T) {
	document := `{
    "posts": [
        {
            "id": 1,
            "zulu": "z",
            "alpha": "a",
            "title": "ordered"
        }
    ]
}`
	path := filepath.Join(t.TempDir(), "database.json")
	if err := os.WriteFile(path, []byte(document), 0666); err != nil {
		t.Fatal(err)
	}
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Flush(); err != nil {
		t.Fatal(err)
	}
	db.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	zulu := strings.Index(text, "zulu")
	alpha := strings.Index(text, "alpha")
	if zulu < 0 || alpha < 0 || zulu > alpha {
		t.Fatalf("field order not preserved:\n%s", text)
	}
}
