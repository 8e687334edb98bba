package main

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/vkprobe/utility/spak"
)

// spak packs a directory of compiled .spv shader files into a single
// bundle consumable through VKPROBE_SHADER_PACK.
//
//	spak <shader-dir> <out.spak>
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <shader-dir> <out.spak>", filepath.Base(os.Args[0]))
	}
	dir, out := os.Args[1], os.Args[2]

	var author string
	if usr, err := user.Current(); err == nil {
		author = usr.Username
	}

	builder := spak.NewBuilder(spak.Header{
		Author:      author,
		DateCreated: time.Now().Unix(),
		Version:     1,
	})

	var count int
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".spv") {
			return nil
		}
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		if err := builder.Add(f.Name(), data); err != nil {
			return err
		}
		count++
		return nil
	}); err != nil {
		log.Fatal(err)
	}
	if count == 0 {
		log.Fatalf("no .spv files under %s", dir)
	}

	file, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if _, err := builder.WriteTo(file); err != nil {
		log.Fatal(err)
	}
	log.WithField("shaders", count).Info("bundle written to ", out)
}
