// Package tzif decodes the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Decoding is pure: callers hand over the complete contents of a TZif file
// and get back an immutable Document that can be queried concurrently.
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// In V1, time values are 32bit (four-octets) and in V2 upwards time values are 64bit (eight-octets).
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 represents a version 1 TZif file. It contains only the version 1
	// header and data block.
	V1 Version = 0x00
	// V2 represents a version 2 TZif file. It contains the version 1
	// header and data block, a version 2+ header and data block, and a
	// footer.
	V2 Version = 0x32 // '2'
	// V3 represents a version 3 TZif file. The layout is the same as V2;
	// only the footer may use the RFC8536 TZ string extensions.
	V3 Version = 0x33 // '3'
)

func (v Version) supported() bool {
	return v == V1 || v == V2 || v == V3
}

// Width returns the size of time values in the authoritative data block
// of a file with version v.
func (v Version) Width() TimeWidth {
	if v == V1 {
		return TimeWidthV1
	}
	return TimeWidthV2
}

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// HeaderLen is the size of an encoded Header in bytes, including the magic.
const HeaderLen = 44

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version
	// Reserved for future use.
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators contained in the data
	// block. It is either zero or equal to Typecnt.
	Isutcnt uint32

	// Isstdcnt is the number of standard/wall indicators contained in the
	// data block. It is either zero or equal to Typecnt.
	Isstdcnt uint32

	// Leapcnt is the number of leap-second records contained in the data block.
	Leapcnt uint32

	// Timecnt is the number of transition times contained in the data block.
	Timecnt uint32

	// Typecnt is the number of local time type records contained in the data block.
	Typecnt uint32

	// Charcnt is the total number of octets used by the time zone
	// designations, including the trailing NUL of the last designation.
	Charcnt uint32
}

// DecodeHeader decodes the first HeaderLen bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncatedData, HeaderLen, len(b))
	}
	if !bytes.Equal(b[:len(Magic)], Magic[:]) {
		return Header{}, fmt.Errorf("%w: %q", ErrBadMagic, b[:len(Magic)])
	}

	var h Header
	h.Version = Version(b[4])
	if !h.Version.supported() {
		return Header{}, fmt.Errorf("%w: %v", ErrUnsupportedVersion, h.Version)
	}
	copy(h.Reserved[:], b[5:20])
	h.Isutcnt = order.Uint32(b[20:24])
	h.Isstdcnt = order.Uint32(b[24:28])
	h.Leapcnt = order.Uint32(b[28:32])
	h.Timecnt = order.Uint32(b[32:36])
	h.Typecnt = order.Uint32(b[36:40])
	h.Charcnt = order.Uint32(b[40:44])

	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		return Header{}, fmt.Errorf("%w: isutcnt (%d) must be 0 or equal to typecnt (%d)", ErrInconsistentCounts, h.Isutcnt, h.Typecnt)
	}
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		return Header{}, fmt.Errorf("%w: isstdcnt (%d) must be 0 or equal to typecnt (%d)", ErrInconsistentCounts, h.Isstdcnt, h.Typecnt)
	}
	return h, nil
}

// TimeWidth is the size in bytes of a time value in a data block.
type TimeWidth int

const (
	// TimeWidthV1 is the size of time values in the version 1 data block.
	TimeWidthV1 TimeWidth = 4
	// TimeWidthV2 is the size of time values in the version 2+ data block.
	TimeWidthV2 TimeWidth = 8
)

// localTimeTypeRecordLen is the encoded size of a LocalTimeTypeRecord.
const localTimeTypeRecordLen = 6

// DataBlockLen returns the number of bytes occupied by the data block
// described by h when time values are w bytes wide.
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
func DataBlockLen(h Header, w TimeWidth) int64 {
	size := int64(w)
	n := int64(h.Timecnt) * size
	n += int64(h.Timecnt)
	n += int64(h.Typecnt) * localTimeTypeRecordLen
	n += int64(h.Charcnt)
	n += int64(h.Leapcnt) * (size + 4)
	n += int64(h.Isstdcnt)
	n += int64(h.Isutcnt)
	return n
}

// DataBlock is a decoded TZif data block. The same type holds the version 1
// block and the version 2+ block; time values are widened to 64 bits.
type DataBlock struct {
	// TransitionTimes are UNIX leap-time values sorted in ascending order.
	// Each value is a time at which the rules for computing local time may
	// change.
	TransitionTimes []int64

	// TransitionTypes holds, for each transition time, the zero-based index
	// of the local time type record that applies from that transition on.
	TransitionTypes []uint8

	// LocalTimeTypeRecords are the local time types of the zone.
	LocalTimeTypeRecords []LocalTimeTypeRecord

	// Designations is an array of NUL-terminated time zone designation
	// strings, addressed by LocalTimeTypeRecord.Idx. Two designations may
	// overlap if one is a suffix of the other.
	Designations []byte

	// LeapSecondRecords are the corrections that need to be applied to UTC
	// in order to determine TAI, sorted by occurrence.
	LeapSecondRecords []LeapSecondRecord

	// StandardWallIndicators tell whether the transition times associated
	// with local time types were specified as standard time (true) or
	// wall-clock time (false).
	StandardWallIndicators []bool

	// UTLocalIndicators tell whether the transition times associated with
	// local time types were specified as UT (true) or local time (false).
	UTLocalIndicators []bool
}

// DecodeDataBlock decodes the data block described by h from b, reading
// time values of width w. b must hold at least DataBlockLen(h, w) bytes;
// anything after that is ignored. Sections with a zero count decode to nil.
func DecodeDataBlock(h Header, w TimeWidth, b []byte) (DataBlock, error) {
	if w != TimeWidthV1 && w != TimeWidthV2 {
		return DataBlock{}, fmt.Errorf("invalid time width: %d", w)
	}
	if need := DataBlockLen(h, w); int64(len(b)) < need {
		return DataBlock{}, fmt.Errorf("%w: data block needs %d bytes, have %d", ErrTruncatedData, need, len(b))
	}

	var (
		blk DataBlock
		r   = reader{b: b}
	)
	if h.Timecnt > 0 {
		blk.TransitionTimes = make([]int64, h.Timecnt)
		for i := range blk.TransitionTimes {
			blk.TransitionTimes[i] = decodeTime(r.next(int(w)))
		}
		blk.TransitionTypes = bytes.Clone(r.next(int(h.Timecnt)))
	}
	if h.Typecnt > 0 {
		blk.LocalTimeTypeRecords = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range blk.LocalTimeTypeRecords {
			blk.LocalTimeTypeRecords[i] = decodeLocalTimeTypeRecord(r.next(localTimeTypeRecordLen))
		}
	}
	if h.Charcnt > 0 {
		blk.Designations = bytes.Clone(r.next(int(h.Charcnt)))
	}
	if h.Leapcnt > 0 {
		blk.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		for i := range blk.LeapSecondRecords {
			blk.LeapSecondRecords[i] = decodeLeapSecondRecord(r.next(int(w) + 4))
		}
	}
	if h.Isstdcnt > 0 {
		blk.StandardWallIndicators = decodeIndicators(r.next(int(h.Isstdcnt)))
	}
	if h.Isutcnt > 0 {
		blk.UTLocalIndicators = decodeIndicators(r.next(int(h.Isutcnt)))
	}

	if err := validateDataBlock(h, blk); err != nil {
		return DataBlock{}, err
	}
	return blk, nil
}

// reader hands out consecutive sub-slices of b. Callers check the total
// length up front, so next never runs past the end.
type reader struct {
	b   []byte
	off int
}

func (r *reader) next(n int) []byte {
	p := r.b[r.off : r.off+n]
	r.off += n
	return p
}

// decodeTime decodes a big-endian signed time value of len(b) bytes (4 or 8).
func decodeTime(b []byte) int64 {
	if len(b) == int(TimeWidthV1) {
		return int64(int32(order.Uint32(b)))
	}
	return int64(order.Uint64(b))
}

func decodeIndicators(b []byte) []bool {
	v := make([]bool, len(b))
	for i, c := range b {
		v[i] = c != 0
	}
	return v
}

// LocalTimeTypeRecord represents a local time type record.
// Each record has the following format (the lengths of multi-octet fields
// are shown in parentheses):
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds to be added to UT in order to
	// determine local time.
	Utoff int32

	// Dst indicates whether local time should be considered Daylight
	// Saving Time.
	Dst bool

	// Idx is a zero-based index into the time zone designations, selecting
	// the NUL-terminated string that starts at that position.
	Idx uint8
}

func (r LocalTimeTypeRecord) String() string {
	return fmt.Sprintf("{Utoff:%s Dst:%t Idx:%d}", FormatOffset(int64(r.Utoff)), r.Dst, r.Idx)
}

func decodeLocalTimeTypeRecord(b []byte) LocalTimeTypeRecord {
	_ = b[localTimeTypeRecordLen-1]
	return LocalTimeTypeRecord{
		Utoff: int32(order.Uint32(b[0:4])),
		Dst:   b[4] != 0,
		Idx:   b[5],
	}
}

// LeapSecondRecord represents a leap-second record. The occurrence is
// TIME_SIZE octets wide in the file:
//
//	+---------------+---------------+
//	|  occur (4/8)  |  corr (4)     |
//	+---------------+---------------+
type LeapSecondRecord struct {
	// Occur is the UNIX leap time at which a leap-second correction occurs.
	Occur int64

	// Corr is the value of LEAPCORR on or after the occurrence.
	Corr int32
}

func decodeLeapSecondRecord(b []byte) LeapSecondRecord {
	w := len(b) - 4
	return LeapSecondRecord{
		Occur: decodeTime(b[:w]),
		Corr:  int32(order.Uint32(b[w:])),
	}
}

// Footer represents the footer of a version 2+ TZif file.
// The footer is structured as follows:
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
//
// The bytes are kept exactly as found in the file; the TZ string is never
// interpreted.
type Footer struct {
	Raw []byte
}

var asciiNewLine = byte(0x0A)

// DecodeFooter captures b verbatim as a Footer.
func DecodeFooter(b []byte) Footer {
	return Footer{Raw: bytes.Clone(b)}
}

// TZString returns the bytes between the enclosing newlines. If the footer
// is not framed by newlines, the raw bytes are returned unchanged.
func (f Footer) TZString() []byte {
	raw := f.Raw
	if len(raw) < 2 || raw[0] != asciiNewLine {
		return raw
	}
	end := bytes.IndexByte(raw[1:], asciiNewLine)
	if end < 0 {
		return raw
	}
	return raw[1 : 1+end]
}
