package tzif

import (
	"bytes"
	"fmt"
	"slices"
)

// Document is a decoded TZif file.
//
// For V2+ files the version 2+ header and data block are authoritative and
// the version 1 block is discarded after it has been validated. The legacy
// header is kept for diagnostics. A Document is never modified after Decode
// returns it; accessors hand out copies.
type Document struct {
	legacy Header
	header Header
	block  DataBlock
	footer Footer
}

// Decode decodes a complete TZif file held in b.
func Decode(b []byte) (*Document, error) {
	if len(b) <= HeaderLen {
		return nil, fmt.Errorf("read v1 header: %w: file is %d bytes", ErrTruncatedData, len(b))
	}

	v1Header, err := DecodeHeader(b[:HeaderLen])
	if err != nil {
		return nil, fmt.Errorf("read v1 header: %w", err)
	}
	off := int64(HeaderLen)

	v1Data, err := DecodeDataBlock(v1Header, TimeWidthV1, b[off:])
	if err != nil {
		return nil, fmt.Errorf("read v1 data block: %w", err)
	}
	off += DataBlockLen(v1Header, TimeWidthV1)

	d := &Document{
		legacy: v1Header,
		header: v1Header,
		block:  v1Data,
	}
	if v1Header.Version == V1 {
		return d, nil
	}

	v2Header, err := DecodeHeader(b[off:])
	if err != nil {
		return nil, fmt.Errorf("read v2 header: %w", err)
	}
	if v2Header.Version != v1Header.Version {
		return nil, fmt.Errorf("read v2 header: %w: v1 header = %v, v2 header = %v", ErrUnsupportedVersion, v1Header.Version, v2Header.Version)
	}
	off += HeaderLen

	v2Data, err := DecodeDataBlock(v2Header, TimeWidthV2, b[off:])
	if err != nil {
		return nil, fmt.Errorf("read v2 data block: %w", err)
	}
	off += DataBlockLen(v2Header, TimeWidthV2)

	d.header = v2Header
	d.block = v2Data
	d.footer = DecodeFooter(b[off:])
	return d, nil
}

// Version returns the version of the file.
func (d *Document) Version() Version { return d.header.Version }

// Header returns the authoritative header: the version 2+ header for V2+
// files and the version 1 header otherwise.
func (d *Document) Header() Header { return d.header }

// LegacyHeader returns the version 1 header. For V1 files it is the same
// as Header.
func (d *Document) LegacyHeader() Header { return d.legacy }

// DataBlock returns a copy of the authoritative data block.
func (d *Document) DataBlock() DataBlock {
	return DataBlock{
		TransitionTimes:        slices.Clone(d.block.TransitionTimes),
		TransitionTypes:        slices.Clone(d.block.TransitionTypes),
		LocalTimeTypeRecords:   slices.Clone(d.block.LocalTimeTypeRecords),
		Designations:           slices.Clone(d.block.Designations),
		LeapSecondRecords:      slices.Clone(d.block.LeapSecondRecords),
		StandardWallIndicators: slices.Clone(d.block.StandardWallIndicators),
		UTLocalIndicators:      slices.Clone(d.block.UTLocalIndicators),
	}
}

// TransitionTimes returns a copy of the transition times.
func (d *Document) TransitionTimes() []int64 { return slices.Clone(d.block.TransitionTimes) }

// TransitionTypes returns a copy of the transition types.
func (d *Document) TransitionTypes() []uint8 { return slices.Clone(d.block.TransitionTypes) }

// LocalTimeTypeRecords returns a copy of the local time type records.
func (d *Document) LocalTimeTypeRecords() []LocalTimeTypeRecord {
	return slices.Clone(d.block.LocalTimeTypeRecords)
}

// LeapSecondRecords returns a copy of the leap-second records.
func (d *Document) LeapSecondRecords() []LeapSecondRecord {
	return slices.Clone(d.block.LeapSecondRecords)
}

// Footer returns a copy of the footer. It is empty for V1 files.
func (d *Document) Footer() Footer {
	return Footer{Raw: bytes.Clone(d.footer.Raw)}
}
