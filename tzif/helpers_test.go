package tzif

// The package only decodes, so tests build their input with these helpers.

func headerFor(v Version, b DataBlock) Header {
	return Header{
		Version:  v,
		Isutcnt:  uint32(len(b.UTLocalIndicators)),
		Isstdcnt: uint32(len(b.StandardWallIndicators)),
		Leapcnt:  uint32(len(b.LeapSecondRecords)),
		Timecnt:  uint32(len(b.TransitionTimes)),
		Typecnt:  uint32(len(b.LocalTimeTypeRecords)),
		Charcnt:  uint32(len(b.Designations)),
	}
}

func appendHeader(dst []byte, h Header) []byte {
	dst = append(dst, Magic[:]...)
	dst = append(dst, byte(h.Version))
	dst = append(dst, h.Reserved[:]...)
	for _, c := range []uint32{h.Isutcnt, h.Isstdcnt, h.Leapcnt, h.Timecnt, h.Typecnt, h.Charcnt} {
		dst = order.AppendUint32(dst, c)
	}
	return dst
}

func appendTime(dst []byte, t int64, w TimeWidth) []byte {
	if w == TimeWidthV1 {
		return order.AppendUint32(dst, uint32(int32(t)))
	}
	return order.AppendUint64(dst, uint64(t))
}

func appendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func appendDataBlock(dst []byte, b DataBlock, w TimeWidth) []byte {
	for _, t := range b.TransitionTimes {
		dst = appendTime(dst, t, w)
	}
	dst = append(dst, b.TransitionTypes...)
	for _, r := range b.LocalTimeTypeRecords {
		dst = order.AppendUint32(dst, uint32(r.Utoff))
		dst = appendBool(dst, r.Dst)
		dst = append(dst, r.Idx)
	}
	dst = append(dst, b.Designations...)
	for _, r := range b.LeapSecondRecords {
		dst = appendTime(dst, r.Occur, w)
		dst = order.AppendUint32(dst, uint32(r.Corr))
	}
	for _, v := range b.StandardWallIndicators {
		dst = appendBool(dst, v)
	}
	for _, v := range b.UTLocalIndicators {
		dst = appendBool(dst, v)
	}
	return dst
}

// encodeV1 encodes a version 1 file holding b.
func encodeV1(b DataBlock) []byte {
	buf := appendHeader(nil, headerFor(V1, b))
	return appendDataBlock(buf, b, TimeWidthV1)
}

// encodeV2 encodes a version 2+ file with the given legacy and
// authoritative blocks and the TZ string framed by newlines.
func encodeV2(v Version, v1, v2 DataBlock, tz string) []byte {
	buf := appendHeader(nil, headerFor(v, v1))
	buf = appendDataBlock(buf, v1, TimeWidthV1)
	buf = appendHeader(buf, headerFor(v, v2))
	buf = appendDataBlock(buf, v2, TimeWidthV2)
	buf = append(buf, '\n')
	buf = append(buf, tz...)
	return append(buf, '\n')
}

func mustDecode(t interface {
	Helper()
	Fatalf(string, ...any)
}, b []byte) *Document {
	t.Helper()
	d, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	return d
}
