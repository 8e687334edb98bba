// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in
// the header, it will be overwritten anyway.
func NewBuilder(header Header) *Builder {
	return &Builder{header: header}
}

type pendingBlob struct {
	// Name is the entry name in the index
	Name string

	// Size of the blob before compression
	Size int64

	// Compressed holds the lz4 frame
	Compressed []byte
}

// Builder is the high level builder for the bundle format. Bundles
// are versioned and cannot be appended to, this Builder is the way to
// create one. Blobs are compressed as they are added (shader bytecode
// is small, buffering compressed frames in memory is fine) and written
// out together by WriteTo.
type Builder struct {
	header Header

	mutex sync.Mutex
	blobs []pendingBlob
}

// Add appends data to the builder with a given name. Will block until
// lz4 finishes compression. Is safe to use concurrently in different
// goroutines.
func (b *Builder) Add(name string, data []byte) error {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.blobs = append(b.blobs, pendingBlob{
		Name:       name,
		Size:       int64(len(data)),
		Compressed: compressed.Bytes(),
	})
	return nil
}

// WriteTo implements io.WriterTo, laying the bundle out as magic,
// fixed-width header size, gob encoded header, then the compressed
// blobs back to back in index order.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = make([]IndexEntry, 0, len(b.blobs))

	var offset int64
	for _, blob := range b.blobs {
		header.Index = append(header.Index, IndexEntry{
			Name:           blob.Name,
			Offset:         offset,
			Size:           blob.Size,
			CompressedSize: int64(len(blob.Compressed)),
		})
		offset += int64(len(blob.Compressed))
	}

	headerBytes, err := gobEncode(&header)
	if err != nil {
		return 0, err
	}

	var written int64
	for _, chunk := range [][]byte{magic, int64ToBinary(int64(len(headerBytes))), headerBytes} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	for _, blob := range b.blobs {
		n, err := w.Write(blob.Compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
