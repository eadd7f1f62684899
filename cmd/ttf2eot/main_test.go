package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/fontforge"
	"github.com/speedata/gowebfont/internal/sfnttest"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestOutputName(t *testing.T) {
	testdata := []struct {
		src, dir, want string
	}{
		{"fonts/Crimson.ttf", "", filepath.Join("fonts", "Crimson.eot")},
		{"fonts/Crimson.OTF", "out", filepath.Join("out", "Crimson.eot")},
		{"Crimson", "", "Crimson.eot"},
		{"a/b.font.ttf", "", filepath.Join("a", "b.font.eot")},
	}
	for _, td := range testdata {
		if got := outputName(td.src, td.dir); got != td.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", td.src, td.dir, got, td.want)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "go.ttf")
	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := options{OutDir: filepath.Join(dir, "out")}

	files := []string{bad, good, filepath.Join(dir, "missing.ttf")}
	if got, want := run(context.Background(), quietLogger(), opts, files), 2; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "go.eot")); err != nil {
		t.Errorf("go.eot not written: %s", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "bad.eot")); err == nil {
		t.Error("bad.eot written for a broken font")
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeFont(t *testing.T, fn string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestRunRefusesSameOutput(t *testing.T) {
	dir := t.TempDir()
	regular := writeFont(t, filepath.Join(dir, "Font.ttf"), goregular.TTF)
	bold := writeFont(t, filepath.Join(dir, "Font.otf"), gobold.TTF)

	if got, want := run(context.Background(), quietLogger(), options{}, []string{regular, bold}), 1; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Font.eot"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, goregular.TTF) {
		t.Error("Font.eot does not hold the first font")
	}
}

func TestRunRefusesSameOutputInOutDir(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFont(t, filepath.Join(dir, "a", "X.ttf"), goregular.TTF),
		writeFont(t, filepath.Join(dir, "b", "X.ttf"), gobold.TTF),
	}
	opts := options{OutDir: filepath.Join(dir, "out")}
	if got, want := run(context.Background(), quietLogger(), opts, files), 1; got != want {
		t.Errorf("run() with -o = %d failures, want %d", got, want)
	}
	// without -o both land next to their sources
	if got, want := run(context.Background(), quietLogger(), options{}, files), 0; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
}

// cffFont returns a convertible font claiming CFF outlines.
func cffFont() []byte {
	font := sfnttest.Minimal(sfnttest.OS2Fields{WeightClass: 400}, 0, sfnttest.WindowsName(1, "CFF"))
	copy(font, "OTTO")
	return font
}

func TestRunConfiguredFontForgeMissing(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFont(t, filepath.Join(dir, "cff.otf"), cffFont()),
		writeFont(t, filepath.Join(dir, "go.ttf"), goregular.TTF),
	}
	opts := options{FontForge: filepath.Join(dir, "no-such-fontforge")}
	if got, want := run(context.Background(), quietLogger(), opts, files), 1; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "cff.eot")); err == nil {
		t.Error("cff.eot written although the configured fontforge is missing")
	}
	if _, err := os.Stat(filepath.Join(dir, "go.eot")); err != nil {
		t.Errorf("go.eot not written: %s", err)
	}
}

func TestRunConfiguredFontForgeMissingFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(fontforge.EnvPath, filepath.Join(dir, "no-such-fontforge"))
	files := []string{writeFont(t, filepath.Join(dir, "cff.otf"), cffFont())}
	if got, want := run(context.Background(), quietLogger(), options{}, files), 1; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
}

func TestRunWithoutFontForge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(fontforge.EnvPath, "")
	t.Setenv("PATH", t.TempDir())
	files := []string{writeFont(t, filepath.Join(dir, "cff.otf"), cffFont())}
	if got, want := run(context.Background(), quietLogger(), options{}, files), 0; got != want {
		t.Errorf("run() = %d failures, want %d", got, want)
	}
	data, err := os.ReadFile(filepath.Join(dir, "cff.eot"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, cffFont()) {
		t.Error("CFF font data not embedded unchanged")
	}
}
