// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devblok/vkprobe/utility/spak"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildBundle(t *testing.T) []byte {
	t.Helper()

	builder := spak.NewBuilder(spak.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("test", []byte(testString1)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", []byte(testString2)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if written, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	} else {
		t.Logf("written %d", written)
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	ar, err := spak.Open(bytes.NewReader(buildBundle(t)))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Size() != int64(len(testString1)) {
		t.Errorf("blob size %d, expected %d", f.Size(), len(testString1))
	}

	result := make([]byte, len(testString1))
	n, err := f.Read(result)
	if err != nil {
		t.Error(err)
	}
	t.Log(n)

	if strings.Compare(string(result), testString1) != 0 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	ar, err := spak.Open(bytes.NewReader(buildBundle(t)))
	if err != nil {
		t.Fatal(err)
	}

	data, err := ar.ReadAll("test2")
	if err != nil {
		t.Error(err)
	}
	if string(data) != testString2 {
		t.Error("test string does not match up")
	}
}

func TestNames(t *testing.T) {
	ar, err := spak.Open(bytes.NewReader(buildBundle(t)))
	if err != nil {
		t.Fatal(err)
	}

	names := ar.Names()
	if len(names) != 2 || names[0] != "test" || names[1] != "test2" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestOpenMissingEntry(t *testing.T) {
	ar, err := spak.Open(bytes.NewReader(buildBundle(t)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ar.Open("nope"); !errors.Is(err, spak.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := spak.Open(bytes.NewReader([]byte("KARF definitely not a bundle"))); !errors.Is(err, spak.ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}
