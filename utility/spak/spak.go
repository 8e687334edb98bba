// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package spak is an lz4 backed bundle format for precompiled shader
// bytecode. The bundle itself is not compressed, every blob is
// individually compressed so any one of them can be read and
// decompressed in place without touching the rest. The index sits in
// the header, so all blob locations are known before anything is read,
// and reads may happen concurrently.
package spak

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a spak bundle")
	ErrNotFound   = errors.New("no such entry in bundle")
)

// Sizes relevant to the header of the file
const (
	MagicLength            = 4
	HeaderSizeNumberLength = 16
)

var magic = []byte("SPAK")

// IndexEntry is info for one blob in the bundle index. Offset is
// relative to the start of the data section, which begins right after
// the header.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header for spak bundles.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func int64ToBinary(num int64) []byte {
	numBytes := make([]byte, HeaderSizeNumberLength)
	binary.PutVarint(numBytes, num)
	return numBytes
}

func binaryToInt64(bts []byte) (int64, error) {
	num, err := binary.ReadVarint(bytes.NewReader(bts))
	if err != nil {
		return 0, err
	}
	return num, nil
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	dec := gob.NewDecoder(bytes.NewBuffer(bts))
	return dec.Decode(obj)
}
