package bookmarklet

import (
	"io"
	"path/filepath"
)

// DefaultBlankName is the path of the file produced by Blank("").
const DefaultBlankName = "artoo.bookmark.js"

// Contents is the payload of a File: NullContents, BufferContents or
// StreamContents. A nil Contents is treated as NullContents.
type Contents interface {
	isContents()
}

// NullContents marks a file without content (a directory entry, say).
// Tasks forward such files unchanged.
type NullContents struct{}

// BufferContents is content held in memory.
type BufferContents []byte

// StreamContents is content available only as a reader. Tasks reject it.
type StreamContents struct {
	io.Reader
}

func (NullContents) isContents()   {}
func (BufferContents) isContents() {}
func (StreamContents) isContents() {}

// File is one unit flowing through a task.
type File struct {
	Cwd      string // working directory the file was found from
	Base     string // base directory of the file's glob
	Path     string // full path of the file
	Contents Contents
}

// NewFile creates a file with buffered contents.
func NewFile(cwd, base, path string, data []byte) *File {
	return &File{Cwd: cwd, Base: base, Path: path, Contents: BufferContents(data)}
}

// IsNull reports whether the file has no content.
func (f *File) IsNull() bool {
	switch f.Contents.(type) {
	case nil, NullContents:
		return true
	}
	return false
}

// IsBuffer reports whether the content is held in memory.
func (f *File) IsBuffer() bool {
	_, ok := f.Contents.(BufferContents)
	return ok
}

// IsStream reports whether the content is a reader.
func (f *File) IsStream() bool {
	_, ok := f.Contents.(StreamContents)
	return ok
}

// Bytes returns buffered content, or nil for other kinds.
func (f *File) Bytes() []byte {
	if b, ok := f.Contents.(BufferContents); ok {
		return b
	}
	return nil
}

// Relative returns Path relative to Base, or Path when that fails.
func (f *File) Relative() string {
	if f.Base == "" {
		return f.Path
	}
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil {
		return f.Path
	}
	return rel
}

// withContents returns a copy of f holding c.
func (f *File) withContents(c Contents) *File {
	out := *f
	out.Contents = c
	return &out
}
