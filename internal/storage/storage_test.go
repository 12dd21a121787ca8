package storage

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"résumé.pdf", "resume.pdf"},
		{"отчёт.docx", "docx"},
		{"файл", ""},
		{"  .hidden.png ", "hidden.png"},
		{`C:\Users\ann\photo.jpg`, "C_Users_ann_photo.jpg"},
	}
	for _, tt := range tests {
		if got := SecureFilename(tt.in); got != tt.want {
			t.Errorf("SecureFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSecureFilenameDeviceNames(t *testing.T) {
	want := "con.txt"
	if runtime.GOOS == "windows" {
		want = "_con.txt"
	}
	if got := SecureFilename("con.txt"); got != want {
		t.Fatalf("SecureFilename(con.txt) = %q, want %q", got, want)
	}
}

func TestAllowedFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.png":        true,
		"a.JPG":        true,
		"a.tar.zip":    true,
		"report.docx":  true,
		"a.exe":        false,
		"a.png.exe":    false,
		"noextension":  false,
		"archive.tar":  false,
		"trailingdot.": false,
	} {
		if got := AllowedFile(name); got != want {
			t.Errorf("AllowedFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMimeType(t *testing.T) {
	for name, want := range map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.pdf":  "application/pdf",
		"a.txt":  "text/plain",
		"a.doc":  "application/msword",
		"a.docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"a.zip":  "application/zip",
		"a.bin":  "application/octet-stream",
		"a":      "application/octet-stream",
	} {
		if got := MimeType(name); got != want {
			t.Errorf("MimeType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Save(ctx, "a.txt", strings.NewReader("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// same name overwrites
	if err := l.Save(ctx, "a.txt", strings.NewReader("second")); err != nil {
		t.Fatalf("save: %v", err)
	}
	rc, err := l.Open(ctx, "a.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "second" {
		t.Fatalf("content = %q", b)
	}

	if err := l.Remove(ctx, "a.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := l.Remove(ctx, "a.txt"); err != nil {
		t.Fatalf("removing a missing file must succeed: %v", err)
	}
	if _, err := l.Open(ctx, "a.txt"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("open after remove: %v", err)
	}
}

func TestLocalRejectsPaths(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", ".", "..", "../x.txt", "a/b.txt"} {
		if err := l.Save(ctx, name, strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q) err = %v", name, err)
		}
		if _, err := l.Open(ctx, name); !errors.Is(err, ErrNotExist) {
			t.Errorf("Open(%q) err = %v", name, err)
		}
	}
}
