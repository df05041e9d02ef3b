// Package zoneinfo reads TZif files from a zone database directory such as
// /usr/share/zoneinfo and decodes them with package tzif.
package zoneinfo

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/ngrash/go-tzinfo/tzif"
)

// ErrInvalidName is returned for zone names that are empty, absolute or
// that would leave the zone database directory.
var ErrInvalidName = errors.New("invalid zone name")

// Loader opens zone files by name below the directory of its Config.
// A Loader holds no mutable state and may be shared between goroutines.
type Loader struct {
	fs  afero.Fs
	dir string
	log *log.Entry
}

// New returns a Loader reading from fs. A nil fs means the operating
// system's file system.
func New(fs afero.Fs, cfg Config) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return &Loader{
		fs:  fs,
		dir: dir,
		log: log.WithField("module", "zoneinfo"),
	}
}

// Dir returns the zone database directory.
func (l *Loader) Dir() string { return l.dir }

// Path returns the file path of the named zone, for example
// "/usr/share/zoneinfo/Europe/Berlin" for "Europe/Berlin".
func (l *Loader) Path(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) || containsDotDot(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.dir, filepath.FromSlash(name)), nil
}

// containsDotDot reports whether s contains a ".." path element.
func containsDotDot(s string) bool {
	for _, elem := range strings.Split(s, "/") {
		if elem == ".." {
			return true
		}
	}
	return false
}

// ReadZone returns the raw contents of the named zone file.
func (l *Loader) ReadZone(name string) ([]byte, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return l.readFile(path)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// Load reads and decodes the named zone.
func (l *Loader) Load(name string) (*tzif.Document, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return l.load(name, path)
}

// LoadFile reads and decodes the TZif file at path, which is used as is
// and not resolved against the zone database directory.
func (l *Loader) LoadFile(path string) (*tzif.Document, error) {
	return l.load(filepath.Base(path), path)
}

func (l *Loader) load(name, path string) (*tzif.Document, error) {
	entry := l.log.WithFields(log.Fields{"zone": name, "path": path})

	b, err := l.readFile(path)
	if err != nil {
		entry.WithError(err).Debug("reading zone failed")
		return nil, fmt.Errorf("zone %s: %w", name, err)
	}
	d, err := tzif.Decode(b)
	if err != nil {
		entry.WithError(err).WithField("bytes", len(b)).Debug("decoding zone failed")
		return nil, fmt.Errorf("zone %s: %w", name, err)
	}
	entry.WithFields(log.Fields{
		"size":    humanize.Bytes(uint64(len(b))),
		"version": d.Version().String(),
		"timecnt": d.Header().Timecnt,
	}).Debug("loaded zone")
	return d, nil
}
