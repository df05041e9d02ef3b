package main

import (
	"errors"
	"fmt"
	"time"

	"4d63.com/tz"
	"github.com/apex/log"

	"github.com/ngrash/go-tzinfo/tzif"
)

// VerifyCmd checks a zone against the zone data embedded in the Go
// distribution, as decoded by package time.
type VerifyCmd struct {
	ZoneFlags `embed:""`
	Zone string `arg:"" help:"Zone name, for example Europe/Berlin."`
	As   string `name:"as" help:"Reference location name (default the zone name)."`
}

func (c *VerifyCmd) Run(g *Globals) error {
	ref := c.As
	if ref == "" {
		if c.File {
			return errors.New("--as is required with --file")
		}
		ref = c.Zone
	}
	loc, err := tz.LoadLocation(ref)
	if err != nil {
		return fmt.Errorf("reference location: %w", err)
	}

	l, err := g.loader()
	if err != nil {
		return err
	}
	d, err := c.load(l, c.Zone)
	if err != nil {
		return err
	}

	mismatches, checked, err := compareLocation(d, loc)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"zone": c.Zone, "reference": ref, "checked": checked}).Debug("verified zone")

	for _, m := range mismatches {
		fmt.Fprintf(g.Stdout, "at %d: got %v, want %v\n", m.at, m.got, m.want)
	}
	fmt.Fprintf(g.Stdout, "checked %d instants against %s: %d mismatches\n", checked, ref, len(mismatches))
	if len(mismatches) > 0 {
		return fmt.Errorf("%s differs from %s", c.Zone, ref)
	}
	return nil
}

type zoneState struct {
	utoff int
	dst   bool
	name  string
}

func (s zoneState) String() string {
	return fmt.Sprintf("%s %s dst=%t", tzif.FormatOffset(int64(s.utoff)), s.name, s.dst)
}

type mismatch struct {
	at        int64
	got, want zoneState
}

// compareLocation looks up every transition instant of d in both d and loc.
// Zones without transitions are checked at the epoch.
func compareLocation(d *tzif.Document, loc *time.Location) ([]mismatch, int, error) {
	instants := d.TransitionTimes()
	if len(instants) == 0 {
		instants = []int64{0}
	}

	var out []mismatch
	for _, at := range instants {
		i := d.Search(at)
		r, err := d.LocalTimeType(i)
		if err != nil {
			return nil, 0, err
		}
		name, err := d.Designation(i)
		if err != nil {
			return nil, 0, err
		}
		got := zoneState{utoff: int(r.Utoff), dst: r.Dst, name: name}

		t := time.Unix(at, 0).In(loc)
		wname, woff := t.Zone()
		want := zoneState{utoff: woff, dst: t.IsDST(), name: wname}

		if got != want {
			out = append(out, mismatch{at: at, got: got, want: want})
		}
	}
	return out, len(instants), nil
}
