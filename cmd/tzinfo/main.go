// Command tzinfo inspects TZif files and answers offset queries.
//
//	tzinfo dump Europe/Berlin
//	tzinfo lookup Europe/Berlin 1700000000
//	tzinfo diff --file a.tzif b.tzif
//	tzinfo verify America/New_York
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/ngrash/go-tzinfo/tzif"
	"github.com/ngrash/go-tzinfo/zoneinfo"
)

const version = "0.1.0"

// Globals are the flags shared by all commands.
type Globals struct {
	Config   string `name:"config" short:"c" help:"TOML configuration file." type:"path"`
	Zoneinfo string `name:"zoneinfo" short:"d" help:"Zone database directory (default ${default_dir})." env:"ZONEINFO"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)."`

	Fs     afero.Fs  `kong:"-"`
	Stdout io.Writer `kong:"-"`
}

// CLI is the command line of tzinfo.
type CLI struct {
	Globals

	Dump    DumpCmd    `cmd:"" help:"Print every decoded field of a zone."`
	Lookup  LookupCmd  `cmd:"" help:"Show the local time type in force at a UTC instant."`
	Diff    DiffCmd    `cmd:"" help:"Compare the decoded contents of two zones."`
	Verify  VerifyCmd  `cmd:"" help:"Check a zone against the zone data shipped with Go."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// config merges the config file, if any, with the command line flags.
func (g *Globals) config() (zoneinfo.Config, error) {
	cfg := zoneinfo.DefaultConfig()
	if g.Config != "" {
		var err error
		if cfg, err = zoneinfo.LoadConfig(g.Fs, g.Config); err != nil {
			return cfg, err
		}
	}
	if g.Zoneinfo != "" {
		cfg.Dir = g.Zoneinfo
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	return cfg, nil
}

// loader configures logging and returns a loader for the configured directory.
func (g *Globals) loader() (*zoneinfo.Loader, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)
	return zoneinfo.New(g.Fs, cfg), nil
}

// ZoneFlags select how zone arguments are resolved.
type ZoneFlags struct {
	File bool `name:"file" short:"f" help:"Treat arguments as file paths instead of zone names."`
}

func (z ZoneFlags) load(l *zoneinfo.Loader, name string) (*tzif.Document, error) {
	if z.File {
		return l.LoadFile(name)
	}
	return l.Load(name)
}

// DumpCmd prints the decoded contents of a zone.
type DumpCmd struct {
	ZoneFlags `embed:""`
	Zone string `arg:"" help:"Zone name, for example Europe/Berlin."`
	V1   bool   `name:"v1" help:"Also print the version 1 header."`
}

func (c *DumpCmd) Run(g *Globals) error {
	l, err := g.loader()
	if err != nil {
		return err
	}
	d, err := c.load(l, c.Zone)
	if err != nil {
		return err
	}

	fmt.Fprintln(g.Stdout, "time zone:", c.Zone)
	fmt.Fprintln(g.Stdout)
	if c.V1 && d.Version() > tzif.V1 {
		h := d.LegacyHeader()
		fmt.Fprintln(g.Stdout, "Version 1 header")
		fmt.Fprintf(g.Stdout, "  %+v\n\n", h)
	}
	_, err = d.WriteTo(g.Stdout)
	return err
}

// LookupCmd prints the local time type in force at an instant.
type LookupCmd struct {
	ZoneFlags `embed:""`
	Zone string `arg:"" help:"Zone name, for example Europe/Berlin."`
	At   string `arg:"" optional:"" help:"UNIX time in seconds (default now)."`
}

func (c *LookupCmd) Run(g *Globals) error {
	at := time.Now().Unix()
	if c.At != "" {
		var err error
		if at, err = strconv.ParseInt(c.At, 10, 64); err != nil {
			return fmt.Errorf("invalid UNIX time %q: %w", c.At, err)
		}
	}

	l, err := g.loader()
	if err != nil {
		return err
	}
	d, err := c.load(l, c.Zone)
	if err != nil {
		return err
	}

	i := d.Search(at)
	r, err := d.LocalTimeType(i)
	if err != nil {
		return err
	}
	desig, err := d.Designation(i)
	if err != nil {
		return err
	}

	fmt.Fprintln(g.Stdout, "zone:       ", c.Zone)
	fmt.Fprintln(g.Stdout, "time:       ", at)
	if i >= 0 {
		fmt.Fprintf(g.Stdout, "transition:  %v (at %d)\n", i, d.TransitionTimes()[i])
	} else {
		fmt.Fprintf(g.Stdout, "transition:  %v (default local time type)\n", i)
	}
	fmt.Fprintln(g.Stdout, "utoff:      ", tzif.FormatOffset(int64(r.Utoff)))
	fmt.Fprintln(g.Stdout, "isdst:      ", r.Dst)
	fmt.Fprintln(g.Stdout, "designation:", desig)
	return nil
}

// DiffCmd compares two zones.
type DiffCmd struct {
	ZoneFlags `embed:""`
	A string `arg:"" help:"First zone."`
	B string `arg:"" help:"Second zone."`
}

func (c *DiffCmd) Run(g *Globals) error {
	l, err := g.loader()
	if err != nil {
		return err
	}
	a, err := c.load(l, c.A)
	if err != nil {
		return err
	}
	b, err := c.load(l, c.B)
	if err != nil {
		return err
	}

	if diff := cmp.Diff(a, b, cmp.AllowUnexported(tzif.Document{})); diff != "" {
		fmt.Fprintln(g.Stdout, "zones are different: -A +B")
		fmt.Fprintln(g.Stdout, diff)
	} else {
		fmt.Fprintln(g.Stdout, "zones are identical")
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Stdout, "tzinfo version %s\n", version)
	return nil
}

func newParser(c *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("tzinfo"),
		kong.Description("Inspect TZif time zone files."),
		kong.UsageOnError(),
		kong.Vars{"default_dir": zoneinfo.DefaultDir},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, options...)
	return kong.New(c, options...)
}

func main() {
	log.SetHandler(cli.New(os.Stderr))

	c := CLI{Globals: Globals{Fs: afero.NewOsFs(), Stdout: os.Stdout}}
	parser, err := newParser(&c)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(&c.Globals))
}
