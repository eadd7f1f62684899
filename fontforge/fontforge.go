// Package fontforge converts CFF flavored OpenType fonts to TrueType by
// running an external FontForge executable.
package fontforge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Executable is the name looked up on PATH when no path is configured.
const Executable = "fontforge"

// EnvPath names the environment variable that may hold the executable path.
const EnvPath = "GOWEBFONT_FONTFORGE"

// script opens the first argument and writes the second one. FontForge
// picks the output format from the file extension.
const script = `Open($1); Generate($2)`

// Converter runs FontForge.
type Converter struct {
	Path string
	Log  *logrus.Logger
}

// Find returns a converter for the executable at path. An empty path falls
// back to $GOWEBFONT_FONTFORGE and then to a PATH lookup of "fontforge".
func Find(path string) (*Converter, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = Executable
	}
	p, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("fontforge not found: %w", err)
	}
	return &Converter{Path: p}, nil
}

func (c *Converter) logger() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// Command returns the command that converts the font file src to dst.
func (c *Converter) Command(ctx context.Context, src, dst string) *exec.Cmd {
	return exec.CommandContext(ctx, c.Path, "-lang=ff", "-c", script, src, dst)
}

// ToTTF converts the OpenType font data to TrueType and returns the new
// font data. name is only used for the temporary file names.
func (c *Converter) ToTTF(ctx context.Context, otf []byte, name string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "gowebfont")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	base := filepath.Base(name)
	base = base[:len(base)-len(filepath.Ext(base))]
	src := filepath.Join(dir, base+".otf")
	dst := filepath.Join(dir, base+".ttf")
	if err = os.WriteFile(src, otf, 0o644); err != nil {
		return nil, err
	}

	cmd := c.Command(ctx, src, dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	c.logger().WithFields(logrus.Fields{"cmd": cmd.String()}).Debug("run fontforge")
	if err = cmd.Run(); err != nil {
		return nil, fmt.Errorf("fontforge %s: %w: %s", name, err, bytes.TrimSpace(stderr.Bytes()))
	}
	ttf, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("fontforge %s: no output: %w", name, err)
	}
	return ttf, nil
}
