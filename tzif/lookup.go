package tzif

import (
	"bytes"
	"fmt"
	"strconv"
)

// Index is a position in the transition times of a Document, or one of the
// sentinels NoTransitions and BeforeFirst.
type Index int

const (
	// NoTransitions is returned by Search when there are no transitions at all.
	NoTransitions Index = -2
	// BeforeFirst is returned by Search for timestamps before the first transition.
	BeforeFirst Index = -1
)

func (i Index) String() string {
	switch i {
	case NoTransitions:
		return "none"
	case BeforeFirst:
		return "before first"
	default:
		return strconv.Itoa(int(i))
	}
}

// Search returns the index of the transition in force at UNIX time t, which
// is the largest i with times[i] <= t. times must be sorted in ascending
// order.
func Search(times []int64, t int64) Index {
	n := len(times)
	switch {
	case n == 0:
		return NoTransitions
	case t >= times[n-1]:
		return Index(n - 1)
	case t < times[0]:
		return BeforeFirst
	}

	// Invariant: times[lo] <= t < times[hi].
	lo, hi := 0, n-1
	for hi-lo > 1 {
		m := int(uint(lo+hi) >> 1)
		if times[m] <= t {
			lo = m
		} else {
			hi = m
		}
	}
	return Index(lo)
}

// Search returns the index of the transition in force at UNIX time t.
func (d *Document) Search(t int64) Index {
	return Search(d.block.TransitionTimes, t)
}

// DefaultLocalTimeType is the local time type used for instants not
// covered by any transition: those before the first transition and all
// instants in a file without transitions. Following RFC8536 section 3.2
// this is the first local time type record. A file without any records
// gets a standard-time record with zero offset.
func (d *Document) DefaultLocalTimeType() LocalTimeTypeRecord {
	if len(d.block.LocalTimeTypeRecords) == 0 {
		return LocalTimeTypeRecord{}
	}
	return d.block.LocalTimeTypeRecords[0]
}

// LocalTimeType returns the local time type record selected by the
// transition at i. The sentinels NoTransitions and BeforeFirst resolve to
// DefaultLocalTimeType.
func (d *Document) LocalTimeType(i Index) (LocalTimeTypeRecord, error) {
	if i == NoTransitions || i == BeforeFirst {
		return d.DefaultLocalTimeType(), nil
	}
	if i < 0 || int(i) >= len(d.block.TransitionTypes) {
		return LocalTimeTypeRecord{}, fmt.Errorf("%w: %d, have %d transitions", ErrInvalidQuery, i, len(d.block.TransitionTypes))
	}
	typ := d.block.TransitionTypes[i]
	if int(typ) >= len(d.block.LocalTimeTypeRecords) {
		return LocalTimeTypeRecord{}, fmt.Errorf("%w: transition %d has type %d, have %d types", ErrIndexOutOfRange, i, typ, len(d.block.LocalTimeTypeRecords))
	}
	return d.block.LocalTimeTypeRecords[typ], nil
}

// Lookup returns the local time type in force at UNIX time t.
func (d *Document) Lookup(t int64) (LocalTimeTypeRecord, error) {
	return d.LocalTimeType(d.Search(t))
}

// Offset returns the UTC offset in seconds of the local time type selected by i.
func (d *Document) Offset(i Index) (int32, error) {
	r, err := d.LocalTimeType(i)
	return r.Utoff, err
}

// IsDST reports whether the local time type selected by i is daylight saving time.
func (d *Document) IsDST(i Index) (bool, error) {
	r, err := d.LocalTimeType(i)
	return r.Dst, err
}

// DesignationIndex returns the designation index of the local time type selected by i.
func (d *Document) DesignationIndex(i Index) (uint8, error) {
	r, err := d.LocalTimeType(i)
	return r.Idx, err
}

// Designation returns the time zone designation, such as "CEST", of the
// local time type selected by i.
func (d *Document) Designation(i Index) (string, error) {
	r, err := d.LocalTimeType(i)
	if err != nil {
		return "", err
	}
	return d.designation(r.Idx)
}

// designation resolves the NUL-terminated string starting at idx. An
// unterminated last designation runs to the end of the block.
func (d *Document) designation(idx uint8) (string, error) {
	chars := d.block.Designations
	if len(chars) == 0 && len(d.block.LocalTimeTypeRecords) == 0 {
		// Default record of a file without types.
		return "", nil
	}
	if int(idx) >= len(chars) {
		return "", fmt.Errorf("%w: designation index %d, charcnt = %d", ErrIndexOutOfRange, idx, len(chars))
	}
	s := chars[idx:]
	if end := bytes.IndexByte(s, 0); end >= 0 {
		s = s[:end]
	}
	return string(s), nil
}
