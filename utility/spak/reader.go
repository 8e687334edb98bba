// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pierrec/lz4"
)

// Open opens the spak bundle from r. It will also check that the file
// actually is a spak bundle, and will return an error when it isn't.
func Open(r io.ReaderAt) (*Archive, error) {
	magicBytes := make([]byte, MagicLength)
	if num, err := r.ReadAt(magicBytes, 0); err != nil {
		return nil, err
	} else if num < MagicLength || !bytes.Equal(magicBytes, magic) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToInt64(headerSizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Archive{
		reader:    r,
		header:    header,
		dataStart: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// Archive provides concurrent io for a spak bundle, and can provide
// an io.Reader for each blob separately to perform actions on.
type Archive struct {
	reader    io.ReaderAt
	header    Header
	dataStart int64
}

// Header returns the decoded bundle header.
func (a *Archive) Header() Header {
	return a.header
}

// Names lists the entries in index order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.header.Index))
	for _, entry := range a.header.Index {
		names = append(names, entry.Name)
	}
	return names
}

func (a *Archive) find(name string) (IndexEntry, error) {
	for _, entry := range a.header.Index {
		if entry.Name == name {
			return entry, nil
		}
	}
	return IndexEntry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Open returns a Reader for a blob in the Archive.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, err := a.find(name)
	if err != nil {
		return nil, err
	}
	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		decompressor: lz4.NewReader(section),
		size:         entry.Size,
	}, nil
}

// ReadAll returns the entire decompressed contents of a blob with a
// given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(reader)
}

// Reader is a reader for a single blob in an Archive. Decompression
// happens on the fly as it is read.
type Reader struct {
	decompressor io.Reader
	size         int64
}

// Size returns the decompressed size of the blob.
func (r *Reader) Size() int64 {
	return r.size
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.decompressor.Read(p)
}
