package tzif

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteTo writes a human readable listing of every decoded field of d to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	printHeader(&buf, d.header)
	printDataBlock(&buf, d.header.Version, d.block)
	if d.header.Version > V1 {
		printFooter(&buf, d.footer)
	}
	return buf.WriteTo(w)
}

// String returns the listing written by WriteTo.
func (d *Document) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}

func printHeader(w io.Writer, h Header) {
	fmt.Fprintln(w, "Header")
	fmt.Fprintln(w, "  version  =", h.Version)
	fmt.Fprintln(w, "  isutcnt  =", h.Isutcnt)
	fmt.Fprintln(w, "  isstdcnt =", h.Isstdcnt)
	fmt.Fprintln(w, "  leapcnt  =", h.Leapcnt)
	fmt.Fprintln(w, "  timecnt  =", h.Timecnt)
	fmt.Fprintln(w, "  typecnt  =", h.Typecnt)
	fmt.Fprintln(w, "  charcnt  =", h.Charcnt)
	fmt.Fprintln(w)
}

func printDataBlock(w io.Writer, v Version, b DataBlock) {
	fmt.Fprintln(w, "Data block", v)
	fmt.Fprintf(w, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(w, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(w, "  LocalTimeTypeRecords (%d) = %v\n", len(b.LocalTimeTypeRecords), b.LocalTimeTypeRecords)
	fmt.Fprintf(w, "  Designations (%d) = %q\n", len(b.Designations), splitDesignations(b.Designations))
	fmt.Fprintf(w, "  LeapSecondRecords (%d) = %+v\n", len(b.LeapSecondRecords), b.LeapSecondRecords)
	fmt.Fprintf(w, "  StandardWallIndicators (%d) = %v\n", len(b.StandardWallIndicators), b.StandardWallIndicators)
	fmt.Fprintf(w, "  UTLocalIndicators (%d) = %v\n", len(b.UTLocalIndicators), b.UTLocalIndicators)
	fmt.Fprintln(w)
}

func printFooter(w io.Writer, f Footer) {
	fmt.Fprintln(w, "Footer")
	fmt.Fprintf(w, "  TZString = %q\n", f.TZString())
	fmt.Fprintln(w)
}

func splitDesignations(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(b), "\x00"), "\x00")
}
