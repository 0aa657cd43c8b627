package emu

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"go8080/emu/log"
)

var updateGolden = flag.Bool("update", false, "update golden files")

func TestMain(m *testing.M) {
	flag.Parse()
	log.Disable()
	os.Exit(m.Run())
}

// diffGolden compares got with the content of testdata/<name>.golden.
func diffGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if *updateGolden {
		if err := os.WriteFile(path, got, 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("%s differs\ngot:\n%s\nwant:\n%s", path, got, want)
	}
}

func newEmulator(t testing.TB, image []byte, cfg Config) *Emulator {
	t.Helper()

	e, err := New(image, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}
