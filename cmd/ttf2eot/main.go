// Command ttf2eot converts TrueType and OpenType fonts into Embedded OpenType
// (EOT) files for legacy @font-face embedding.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/eot"
	"github.com/speedata/gowebfont/fontforge"
	"github.com/speedata/gowebfont/opentype"
)

// options are the settings of one run.
type options struct {
	OutDir    string // empty: next to each font
	Jobs      int
	FontForge string // executable; empty: $GOWEBFONT_FONTFORGE or PATH
	Verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.OutDir, "o", "", "write EOT files to `dir` (default: next to each font)")
	flag.IntVar(&opts.Jobs, "j", 0, "number of parallel conversions (default: number of CPUs)")
	flag.StringVar(&opts.FontForge, "fontforge", "", "FontForge `executable` used to turn OTF into TTF")
	flag.BoolVar(&opts.Verbose, "v", false, "print the EOT header of each converted font")
	logLevel := flag.String("loglevel", "warn", "log `level` (trace, debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ttf2eot - convert TrueType/OpenType fonts to EOT\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ttf2eot [options] <font.ttf|font.otf>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opentype.SetLogger(log)
	eot.SetLogger(log)

	failed := run(context.Background(), log, opts, flag.Args())
	if failed > 0 {
		log.Errorf("%d of %d fonts failed", failed, flag.NArg())
		os.Exit(1)
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetFormatter(&nested.Formatter{
		HideKeys: false,
		NoColors: true,
	})
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	return log, nil
}

// errNoFontForge is returned for CFF fonts when a configured FontForge
// executable could not be found.
var errNoFontForge = errors.New("configured fontforge executable not usable")

// converter looks up FontForge. A missing executable is only an error if the
// user asked for a specific one.
type converter struct {
	ff  *fontforge.Converter
	err error // set when a configured path is not usable
}

func findConverter(log *logrus.Logger, path string) converter {
	configured := path != "" || os.Getenv(fontforge.EnvPath) != ""
	c, err := fontforge.Find(path)
	if err == nil {
		c.Log = log
		return converter{ff: c}
	}
	if configured {
		log.Error(err)
		return converter{err: fmt.Errorf("%w: %s", errNoFontForge, err)}
	}
	log.Debug(err)
	return converter{}
}

// run converts all files and returns the number of failures.
func run(ctx context.Context, log *logrus.Logger, opts options, files []string) int {
	conv := findConverter(log, opts.FontForge)

	failed := 0
	sources := make([]eot.Source, 0, len(files))
	// destination path -> source claiming it
	claimed := make(map[string]string, len(files))
	for _, fn := range files {
		dst := outputName(fn, opts.OutDir)
		if prev, ok := claimed[dst]; ok {
			log.WithFields(logrus.Fields{"font": fn}).Errorf("output %s already produced by %s", dst, prev)
			failed++
			continue
		}
		claimed[dst] = fn

		data, err := loadFont(ctx, log, conv, fn)
		if err != nil {
			log.WithFields(logrus.Fields{"font": fn}).Error(err)
			failed++
			continue
		}
		sources = append(sources, eot.Source{Name: fn, Data: data})
	}

	for _, res := range eot.ConvertAll(sources, opts.Jobs) {
		if res.Err != nil {
			log.WithFields(logrus.Fields{"font": res.Name}).Error(res.Err)
			failed++
			continue
		}
		dst := outputName(res.Name, opts.OutDir)
		if err := writeFile(dst, res.EOT); err != nil {
			log.WithFields(logrus.Fields{"font": res.Name}).Error(err)
			failed++
			continue
		}
		log.WithFields(logrus.Fields{
			"font": res.Name,
			"eot":  dst,
		}).Info("written")
		if opts.Verbose {
			if h, err := eot.ParseHeader(res.EOT); err == nil {
				fmt.Printf("%s: %s\n", dst, h)
			}
		}
	}
	return failed
}

// loadFont reads a font file and runs CFF flavored fonts through FontForge
// when it is available.
func loadFont(ctx context.Context, log *logrus.Logger, conv converter, fn string) ([]byte, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	flavor, err := opentype.DetectFlavor(data)
	if err != nil {
		return nil, err
	}
	if flavor != opentype.FlavorCFF {
		return data, nil
	}
	if conv.err != nil {
		return nil, conv.err
	}
	if conv.ff == nil {
		log.WithFields(logrus.Fields{"font": fn}).Warn("fontforge not available, embedding CFF outlines unchanged")
		return data, nil
	}
	return conv.ff.ToTTF(ctx, data, fn)
}

// outputName returns the EOT file name for the font file src. An empty dir
// places the file next to src.
func outputName(src, dir string) string {
	base := filepath.Base(src)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".ttf", ".otf":
		base = base[:len(base)-4]
	}
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, base+".eot")
}

func writeFile(fn string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fn, data, 0o644)
}
