package hasher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/filematch/filematch/pkg/models"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Run("BLAKE3", func(t *testing.T) {
		h, err := New(models.HashBLAKE3, 0)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if h.Name() != "blake3" {
			t.Errorf("Name() = %s, want blake3", h.Name())
		}
	})

	t.Run("SHA256", func(t *testing.T) {
		h, err := New(models.HashSHA256, 0)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if h.Name() != "sha256" {
			t.Errorf("Name() = %s, want sha256", h.Name())
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := New("md5", 0); err == nil {
			t.Error("New(md5) = nil error, want unsupported algorithm")
		}
	})
}

func TestSHA256KnownVectors(t *testing.T) {
	ctx := context.Background()
	h := NewSHA256(DefaultBufferSize)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"ABC", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, []byte(tt.content))
			digest, err := h.Sum(ctx, path)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if digest.String() != tt.want {
				t.Errorf("Sum() = %s, want %s", digest, tt.want)
			}
		})
	}
}

func TestSumChunkedMatchesSingleRead(t *testing.T) {
	// Content larger than the buffer must hash identically to a small file
	// read in one chunk with the same bytes.
	content := bytes.Repeat([]byte("0123456789abcdef"), 64*1024) // 1 MiB
	path := writeTemp(t, content)

	ctx := context.Background()
	for _, algorithm := range []models.HashAlgorithm{models.HashBLAKE3, models.HashSHA256} {
		t.Run(string(algorithm), func(t *testing.T) {
			small, err := New(algorithm, 4096)
			if err != nil {
				t.Fatal(err)
			}
			large, err := New(algorithm, 1<<20)
			if err != nil {
				t.Fatal(err)
			}

			d1, err := small.Sum(ctx, path)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			d2, err := large.Sum(ctx, path)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if d1 != d2 {
				t.Errorf("chunked digest %s != single-read digest %s", d1, d2)
			}
		})
	}
}

func TestSumDistinguishesContent(t *testing.T) {
	ctx := context.Background()
	h := NewBLAKE3(DefaultBufferSize)

	p1 := writeTemp(t, []byte("content A"))
	p2 := writeTemp(t, []byte("content B"))
	p3 := writeTemp(t, []byte("content A"))

	d1, err := h.Sum(ctx, p1)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := h.Sum(ctx, p2)
	if err != nil {
		t.Fatal(err)
	}
	d3, err := h.Sum(ctx, p3)
	if err != nil {
		t.Fatal(err)
	}

	if d1 == d2 {
		t.Error("different contents produced equal digests")
	}
	if d1 != d3 {
		t.Error("identical contents produced different digests")
	}
}

func TestSumMissingFile(t *testing.T) {
	h := NewBLAKE3(DefaultBufferSize)
	_, err := h.Sum(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Sum() on missing file = nil error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Sum() error = %v, want wrapped not-exist", err)
	}
}

func TestSumContextCancelled(t *testing.T) {
	path := writeTemp(t, []byte("data"))
	h := NewSHA256(DefaultBufferSize)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Sum(ctx, path); err == nil {
		t.Error("Sum() with cancelled context = nil error")
	}
}

func TestSetReaderWrapper(t *testing.T) {
	path := writeTemp(t, []byte("wrapped read"))

	var wrapped bool
	h := NewSHA256(DefaultBufferSize)
	h.SetReaderWrapper(func(r io.Reader) io.Reader {
		wrapped = true
		return r
	})

	if _, err := h.Sum(context.Background(), path); err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if !wrapped {
		t.Error("reader wrapper was not applied")
	}
}
