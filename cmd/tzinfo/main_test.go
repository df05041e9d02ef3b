package main

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleZone is a V1 file with transitions at -100 (STD, -01:00) and
// 100 (DST, +00:00).
var sampleZone = []byte{
	'T', 'Z', 'i', 'f', 0x00,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, // isutcnt
	0, 0, 0, 0, // isstdcnt
	0, 0, 0, 0, // leapcnt
	0, 0, 0, 2, // timecnt
	0, 0, 0, 2, // typecnt
	0, 0, 0, 8, // charcnt
	0xff, 0xff, 0xff, 0x9c,
	0x00, 0x00, 0x00, 0x64,
	0, 1,
	0xff, 0xff, 0xf1, 0xf0, 0, 0,
	0x00, 0x00, 0x00, 0x00, 1, 4,
	'S', 'T', 'D', 0, 'D', 'S', 'T', 0,
}

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := CLI{Globals: Globals{Fs: fs, Stdout: &out}}
	parser, err := newParser(&c, kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&c.Globals)
	return out.String(), err
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/zi/Etc/Sample", sampleZone, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/zi/Etc/Other", append(sampleZone[:len(sampleZone):len(sampleZone)], 0), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/zi/Etc/Changed", func() []byte {
		b := append([]byte(nil), sampleZone...)
		b[len(b)-5] = 'X'
		return b
	}(), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/etc/tzinfo.toml", []byte("[zoneinfo]\ndir = \"/zi\"\n"), 0o644))
	return fs
}

func TestLookup(t *testing.T) {
	out, err := run(t, testFs(t), "--zoneinfo", "/zi", "lookup", "Etc/Sample", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "transition:  1 (at 100)")
	assert.Contains(t, out, "utoff:       +00:00:00")
	assert.Contains(t, out, "isdst:       true")
	assert.Contains(t, out, "designation: DST")
}

func TestLookup_BeforeFirst(t *testing.T) {
	out, err := run(t, testFs(t), "--zoneinfo", "/zi", "lookup", "Etc/Sample", "--", "-500")
	require.NoError(t, err)
	assert.Contains(t, out, "transition:  before first (default local time type)")
	assert.Contains(t, out, "utoff:       -01:00:00")
	assert.Contains(t, out, "designation: STD")
}

func TestLookup_InvalidTime(t *testing.T) {
	_, err := run(t, testFs(t), "--zoneinfo", "/zi", "lookup", "Etc/Sample", "noon")
	assert.Error(t, err)
}

func TestLookup_ConfigFile(t *testing.T) {
	out, err := run(t, testFs(t), "--config", "/etc/tzinfo.toml", "lookup", "Etc/Sample", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "transition:  0 (at -100)")
}

func TestDump(t *testing.T) {
	out, err := run(t, testFs(t), "--zoneinfo", "/zi", "dump", "Etc/Sample")
	require.NoError(t, err)
	assert.Contains(t, out, "time zone: Etc/Sample")
	assert.Contains(t, out, "TransitionTimes (2) = [-100 100]")
	assert.Contains(t, out, `Designations (8) = ["STD" "DST"]`)
}

func TestDump_File(t *testing.T) {
	out, err := run(t, testFs(t), "dump", "--file", "/zi/Etc/Sample")
	require.NoError(t, err)
	assert.Contains(t, out, "version  = V1 (0x00)")
}

func TestDump_Missing(t *testing.T) {
	_, err := run(t, testFs(t), "--zoneinfo", "/zi", "dump", "Etc/Missing")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	fs := testFs(t)

	out, err := run(t, fs, "--zoneinfo", "/zi", "diff", "Etc/Sample", "Etc/Other")
	require.NoError(t, err)
	assert.Contains(t, out, "zones are identical")

	out, err = run(t, fs, "--zoneinfo", "/zi", "diff", "Etc/Sample", "Etc/Changed")
	require.NoError(t, err)
	assert.Contains(t, out, "zones are different")
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, testFs(t), "--zoneinfo", "/zi", "--log-level", "loud", "dump", "Etc/Sample")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, testFs(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "tzinfo version "+version+"\n", out)
}

// utcZone is a V1 file without transitions whose only type is UTC.
var utcZone = []byte{
	'T', 'Z', 'i', 'f', 0x00,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, // isutcnt
	0, 0, 0, 0, // isstdcnt
	0, 0, 0, 0, // leapcnt
	0, 0, 0, 0, // timecnt
	0, 0, 0, 1, // typecnt
	0, 0, 0, 4, // charcnt
	0, 0, 0, 0, 0, 0,
	'U', 'T', 'C', 0,
}

func TestVerify(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "/zi/UTC", utcZone, 0o644))

	out, err := run(t, fs, "--zoneinfo", "/zi", "verify", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1 instants against UTC: 0 mismatches")

	out, err = run(t, fs, "--zoneinfo", "/zi", "verify", "Etc/Sample", "--as", "UTC")
	assert.Error(t, err)
	assert.Contains(t, out, "at -100: got -01:00:00 STD dst=false, want +00:00:00 UTC dst=false")
	assert.Contains(t, out, "checked 2 instants against UTC: 2 mismatches")
}

func TestVerify_FileNeedsReference(t *testing.T) {
	_, err := run(t, testFs(t), "verify", "--file", "/zi/Etc/Sample")
	assert.Error(t, err)
}
