package sffs

import "io"

// fatTerminator is the first FAT value that ends a cluster chain; values
// below it are the next logical cluster index.
const fatTerminator uint16 = 0xFFF0

// fatReservedSlots accounts for the six reserved entries at the head of
// the FAT that logical index 0 skips past.
const fatReservedSlots = 6

// readFat resolves the next cluster after logical FAT entry i.
func readFat(r io.ReaderAt, g geometry, fatBase int64, i uint16) (uint16, error) {
	j := int64(i) + fatReservedSlots
	offset := fatBase + (j/0x400*g.fatEccPad+j)*2

	buf := make([]byte, 2)
	n, err := r.ReadAt(buf, offset)
	if err != nil && n < 2 {
		return 0, newError(TruncatedImage, err, "short read of FAT entry %d at 0x%x", i, offset)
	}
	return beU16(buf), nil
}
