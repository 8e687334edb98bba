package core

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devblok/vkprobe/utility/spak"
)

func TestShaderTypeFromName(t *testing.T) {
	if name, shaderType := ShaderTypeFromName("triangle.vert.spv"); name != "triangle" || shaderType != VertexShaderType {
		t.Errorf("got %q %v", name, shaderType)
	}
	if name, shaderType := ShaderTypeFromName("triangle.frag.spv"); name != "triangle" || shaderType != FragmentShaderType {
		t.Errorf("got %q %v", name, shaderType)
	}
	if _, shaderType := ShaderTypeFromName("triangle.vert"); shaderType != UnknownShaderType {
		t.Error("uncompiled source accepted")
	}
	if _, shaderType := ShaderTypeFromName("triangle.comp.spv"); shaderType != UnknownShaderType {
		t.Error("unsupported stage accepted")
	}
	if _, shaderType := ShaderTypeFromName("a.b.c.spv"); shaderType != UnknownShaderType {
		t.Error("malformed name accepted")
	}
	if _, shaderType := ShaderTypeFromName("blob.spv"); shaderType != UnknownShaderType {
		t.Error("stageless name accepted")
	}
}

func TestLoadShaderDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"triangle.vert.spv": []byte("vertex bytecode"),
		"triangle.frag.spv": []byte("fragment bytecode"),
		"notes.txt":         []byte("not a shader"),
		"triangle.vert":     []byte("glsl source"),
	}
	for name, data := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	sources, err := LoadShaderDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	for _, source := range sources {
		if source.Name != "triangle" {
			t.Errorf("unexpected shader name %q", source.Name)
		}
		switch source.Type {
		case VertexShaderType:
			if string(source.Data) != "vertex bytecode" {
				t.Error("vertex bytecode mismatch")
			}
		case FragmentShaderType:
			if string(source.Data) != "fragment bytecode" {
				t.Error("fragment bytecode mismatch")
			}
		default:
			t.Errorf("unexpected shader type %v", source.Type)
		}
	}
}

func TestLoadShaderPack(t *testing.T) {
	builder := spak.NewBuilder(spak.Header{
		Author:      "test",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("triangle.vert.spv", []byte("vertex bytecode")); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("triangle.frag.spv", []byte("fragment bytecode")); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("readme.md", []byte("skipped")); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "shaders.spak")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := builder.WriteTo(file); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadShaderPack(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	for _, source := range sources {
		if source.Name != "triangle" {
			t.Errorf("unexpected shader name %q", source.Name)
		}
		if len(source.Data) == 0 {
			t.Error("empty bytecode out of the bundle")
		}
	}
}
