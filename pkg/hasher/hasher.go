// Package hasher computes fixed-size content digests of files by
// streaming them in bounded chunks through an incremental hash.
package hasher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/filematch/filematch/pkg/models"
)

// DefaultBufferSize is the read chunk size used when none is configured.
const DefaultBufferSize = 64 * 1024

// ReaderWrapper wraps the file reader before hashing (e.g., for rate
// limiting).
type ReaderWrapper func(io.Reader) io.Reader

// Hasher computes the content digest of one file.
type Hasher interface {
	// Sum streams the file at path and returns its digest. On any open
	// or read failure it returns the wrapped cause and no partial digest.
	Sum(ctx context.Context, path string) (models.Digest, error)

	// Name returns the algorithm name
	Name() string
}

// StreamHasher is a chunked-read Hasher over any 256-bit hash.Hash.
type StreamHasher struct {
	name          string
	newHash       func() hash.Hash
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// New creates a hasher for the given algorithm.
func New(algorithm models.HashAlgorithm, bufferSize int) (*StreamHasher, error) {
	switch algorithm {
	case models.HashBLAKE3:
		return NewBLAKE3(bufferSize), nil
	case models.HashSHA256:
		return NewSHA256(bufferSize), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s (use: blake3, sha256)", algorithm)
	}
}

// NewBLAKE3 creates a BLAKE3-based hasher.
func NewBLAKE3(bufferSize int) *StreamHasher {
	return newStreamHasher("blake3", func() hash.Hash { return blake3.New() }, bufferSize)
}

// NewSHA256 creates a SHA-256-based hasher.
func NewSHA256(bufferSize int) *StreamHasher {
	return newStreamHasher("sha256", sha256.New, bufferSize)
}

func newStreamHasher(name string, newHash func() hash.Hash, bufferSize int) *StreamHasher {
	if bufferSize < 4096 {
		bufferSize = DefaultBufferSize
	}
	return &StreamHasher{
		name:       name,
		newHash:    newHash,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (h *StreamHasher) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// Name returns the algorithm name
func (h *StreamHasher) Name() string {
	return h.name
}

// Sum computes the file's digest using streaming reads.
func (h *StreamHasher) Sum(ctx context.Context, path string) (models.Digest, error) {
	var digest models.Digest

	file, err := os.Open(path)
	if err != nil {
		return digest, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if h.readerWrapper != nil {
		reader = h.readerWrapper(reader)
	}

	acc := h.newHash()

	// Get buffer from pool
	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return digest, ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			acc.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return digest, fmt.Errorf("failed to read file: %w", err)
		}
	}

	sum := acc.Sum(nil)
	if len(sum) != models.DigestSize {
		return digest, fmt.Errorf("unexpected digest length %d from %s", len(sum), h.name)
	}
	copy(digest[:], sum)
	return digest, nil
}
