package sffs

import (
	"io"
	"strings"
)

// fstEntryLen is the fixed on-disk size of every FST entry (spec §3).
const fstEntryLen = 0x20

// fstNone is the sub/sib sentinel meaning "no entry".
const fstNone uint16 = 0xFFFF

// maxFstDepth bounds recursive traversal so a cyclic or malformed image
// cannot exhaust the stack; the real tree is a few hundred entries deep
// at most.
const maxFstDepth = 1024

// fstEntry is one decoded 32-byte FST record.
type fstEntry struct {
	name  string
	isDir bool
	sub   uint16 // first child (dir) or first cluster (file)
	sib   uint16 // next sibling
	size  uint32
	uid   uint32
	gid   uint16
}

// readFst decodes logical FST entry k.
func readFst(r io.ReaderAt, g geometry, fstBase int64, k uint16) (fstEntry, error) {
	kk := int64(k)
	offset := fstBase + (kk/0x40*g.fstEccPad+kk)*fstEntryLen

	buf := make([]byte, fstEntryLen)
	n, err := r.ReadAt(buf, offset)
	if err != nil && n < fstEntryLen {
		return fstEntry{}, newError(TruncatedImage, err, "short read of FST entry %d at 0x%x", k, offset)
	}

	mode := buf[12] & 1
	e := fstEntry{
		name:  strings.TrimRight(string(buf[0:12]), "\x00"),
		isDir: mode == 0,
		sub:   beU16(buf[14:16]),
		sib:   beU16(buf[16:18]),
		size:  beU32(buf[18:22]),
		uid:   beU32(buf[22:26]),
		gid:   beU16(buf[26:28]),
	}
	return e, nil
}
