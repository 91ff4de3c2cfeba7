package domain

import (
	"strings"
	"testing"
)

func TestNewDocument_Defaults(t *testing.T) {
	d, err := NewDocument()
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	if !strings.HasPrefix(d.ID, DocumentIDPrefix) {
		t.Fatalf("ID = %q, want prefix %q", d.ID, DocumentIDPrefix)
	}
	if d.Title != UntitledTitle {
		t.Fatalf("Title = %q, want %q", d.Title, UntitledTitle)
	}
	if d.AutosaveID == "" {
		t.Fatal("AutosaveID is empty")
	}
	if !IsValidAutosaveID(d.AutosaveID) {
		t.Fatalf("AutosaveID %q is not filename-safe", d.AutosaveID)
	}
	if d.Encoding != DefaultEncoding {
		t.Fatalf("Encoding = %q, want %q", d.Encoding, DefaultEncoding)
	}
	if d.Dirty {
		t.Fatal("new document must not be dirty")
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestGenerateDocumentID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateDocumentID()
		if err != nil {
			t.Fatalf("GenerateDocumentID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestTitleForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", UntitledTitle},
		{"/home/alex/notes.txt", "notes.txt"},
		{"report.md", "report.md"},
		{"/tmp/dir/", "dir"},
	}
	for _, tt := range tests {
		if got := TitleForPath(tt.path); got != tt.want {
			t.Errorf("TitleForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDocument_DisplayTitle(t *testing.T) {
	d, _ := NewDocument()
	if got := d.DisplayTitle(); got != UntitledTitle {
		t.Fatalf("DisplayTitle = %q, want %q", got, UntitledTitle)
	}

	d.Recovered = true
	if got := d.DisplayTitle(); got != RecoveredTitlePrefix+UntitledTitle {
		t.Fatalf("DisplayTitle = %q, want recovered marker", got)
	}

	// The fallback title is never double-marked.
	d.Title = RecoveredFallbackTitle
	if got := d.DisplayTitle(); got != RecoveredFallbackTitle {
		t.Fatalf("DisplayTitle = %q, want %q", got, RecoveredFallbackTitle)
	}
}

func TestDocument_SetContentAndBindPath(t *testing.T) {
	d, _ := NewDocument()

	d.SetContent("hello")
	if !d.Dirty {
		t.Fatal("SetContent must mark the document dirty")
	}
	if d.Content != "hello" {
		t.Fatalf("Content = %q, want %q", d.Content, "hello")
	}

	d.Recovered = true
	d.BindPath("/home/alex/notes.txt")
	if d.Dirty {
		t.Fatal("BindPath must clear the dirty flag")
	}
	if d.Title != "notes.txt" {
		t.Fatalf("Title = %q, want %q", d.Title, "notes.txt")
	}
	if d.Recovered {
		t.Fatal("BindPath must clear the recovered marker")
	}
	if d.Untitled() {
		t.Fatal("document with a path must not be untitled")
	}
}

func TestDocument_Stats(t *testing.T) {
	d, _ := NewDocument()

	if got := d.Stats(); got.Words != 0 || got.Chars != 0 || got.Lines != 0 {
		t.Fatalf("empty Stats = %+v, want zeros", got)
	}

	d.SetContent("hello brave\nnew world")
	got := d.Stats()
	if got.Words != 4 {
		t.Errorf("Words = %d, want 4", got.Words)
	}
	if got.Chars != 21 {
		t.Errorf("Chars = %d, want 21", got.Chars)
	}
	if got.Lines != 2 {
		t.Errorf("Lines = %d, want 2", got.Lines)
	}
}

func TestDocument_Validate(t *testing.T) {
	d, _ := NewDocument()
	d.AutosaveID = "../etc/passwd"
	err := d.Validate()
	if !IsDomainError(err, "TX-DOC-4001") {
		t.Fatalf("Validate err = %v, want TX-DOC-4001", err)
	}

	d2, _ := NewDocument()
	d2.Title = strings.Repeat("x", MaxTitleLength+1)
	if err := d2.Validate(); !IsDomainError(err, "TX-DOC-4001") {
		t.Fatalf("Validate err = %v, want TX-DOC-4001", err)
	}
}

func TestIsValidAutosaveID(t *testing.T) {
	valid := []string{"01hq3v", "abc-123", "a_b"}
	for _, id := range valid {
		if !IsValidAutosaveID(id) {
			t.Errorf("IsValidAutosaveID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "ABC", "a/b", "a.b", "a b", "..", "a\\b"}
	for _, id := range invalid {
		if IsValidAutosaveID(id) {
			t.Errorf("IsValidAutosaveID(%q) = true, want false", id)
		}
	}
}

func TestDomainError_IsAndCode(t *testing.T) {
	err := ErrDocumentNotFound.WithDetails("txd-x")
	if !IsDomainError(err, "TX-DOC-4040") {
		t.Fatal("IsDomainError failed for wrapped details")
	}
	if GetErrorCode(err) != "TX-DOC-4040" {
		t.Fatalf("GetErrorCode = %q", GetErrorCode(err))
	}

	cause := ErrWriteFailed.WithCause(ErrInternal)
	if GetErrorCode(cause) != "TX-FILE-5002" {
		t.Fatalf("GetErrorCode = %q", GetErrorCode(cause))
	}
}

func TestNewRecoveredDocument(t *testing.T) {
	doc, err := NewRecoveredDocument("01hq3aaaaaaaaaaaaaaaaaaaaa", "draft", "/tmp/notes.txt", "", "")
	if err != nil {
		t.Fatalf("NewRecoveredDocument() error = %v", err)
	}

	if doc.AutosaveID != "01hq3aaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("AutosaveID = %q, snapshot binding lost", doc.AutosaveID)
	}
	if !doc.Recovered || !doc.Dirty {
		t.Fatalf("Recovered = %v, Dirty = %v, want both true", doc.Recovered, doc.Dirty)
	}
	if doc.Title != "notes.txt" {
		t.Fatalf("Title = %q, want notes.txt", doc.Title)
	}
	if doc.Encoding != DefaultEncoding {
		t.Fatalf("Encoding = %q, want %q", doc.Encoding, DefaultEncoding)
	}
	if doc.DisplayTitle() != RecoveredTitlePrefix+"notes.txt" {
		t.Fatalf("DisplayTitle = %q", doc.DisplayTitle())
	}

	if _, err := NewRecoveredDocument("NOT SAFE", "", "", "", ""); !IsDomainError(err, "TX-ARG-1001") {
		t.Fatalf("invalid autosave id: err = %v, want TX-ARG-1001", err)
	}
}
