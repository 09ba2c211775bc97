// Package storage abstracts physical file persistence for product media.
// The interface is small on purpose so handlers and services can be tested
// against an in-memory fake.
package storage

import (
	"io"
)

type FileStore interface {
	// Put writes content under folder and returns the generated relative
	// path handle. The stored name keeps the extension of filename but is
	// otherwise generated, so concurrent uploads never collide.
	Put(content io.Reader, filename string, folder string) (string, error)

	// Delete removes the file at path. A missing file is not an error:
	// the desired end state already holds, so Delete returns false.
	Delete(path string) bool

	Exists(path string) bool
}
