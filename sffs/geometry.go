package sffs

import (
	"os"
)

// Layout identifies which of the three physical NAND layouts an image uses.
type Layout int

const (
	// NoEcc is the 512 MiB layout with no out-of-band bytes per page.
	NoEcc Layout = iota
	// Ecc is the 528 MiB layout with 64 OOB bytes after every 0x800-byte page.
	Ecc
	// OldBootMii is identical to Ecc but carries a 1 KiB trailer holding
	// an embedded AES key.
	OldBootMii
)

func (l Layout) String() string {
	switch l {
	case NoEcc:
		return "NoEcc"
	case Ecc:
		return "Ecc"
	case OldBootMii:
		return "OldBootMii"
	default:
		return "Unknown"
	}
}

// exact byte-lengths that identify each layout (spec §3)
const (
	sizeNoEcc      int64 = 536870912
	sizeEcc        int64 = 553648128
	sizeOldBootMii int64 = 553649152
)

const (
	keyBlobOffset   int64 = 0x158
	oldBootMiiKeyAt int64 = 0x21000158
	keyLength             = 16
)

// geometry bundles every size/offset constant that depends on the layout.
type geometry struct {
	pageLen        int64 // bytes per physical page, including any OOB tail
	physClusterLen int64 // bytes per physical cluster (8 pages)
	fatLen         int64 // byte length of the FAT table following the superblock header
	sbBase         int64 // first candidate superblock offset
	sbEnd          int64 // exclusive end of the superblock ring
	sbStep         int64 // stride between candidate superblocks
	fatEccPad      int64 // padding bytes inserted every 0x400 FAT entries
	fstEccPad      int64 // padding bytes inserted every 0x40 FST entries
}

func geometryFor(l Layout) geometry {
	switch l {
	case NoEcc:
		return geometry{
			pageLen:        0x800,
			physClusterLen: 0x4000,
			fatLen:         0x010000,
			sbBase:         0x1FC00000,
			sbEnd:          0x20000000,
			sbStep:         0x40000,
			fatEccPad:      0,
			fstEccPad:      0,
		}
	default: // Ecc, OldBootMii share geometry
		return geometry{
			pageLen:        0x840,
			physClusterLen: 0x4200,
			fatLen:         0x010800,
			sbBase:         0x20BE0000,
			sbEnd:          0x21000000,
			sbStep:         0x42000,
			fatEccPad:      0x20,
			fstEccPad:      2,
		}
	}
}

// detectLayout classifies an image purely by its byte length.
func detectLayout(size int64) (Layout, error) {
	switch size {
	case sizeNoEcc:
		return NoEcc, nil
	case sizeEcc:
		return Ecc, nil
	case sizeOldBootMii:
		return OldBootMii, nil
	default:
		return 0, newError(UnknownGeometry, nil, "image size %d matches no known NAND layout", size)
	}
}

// loadKey reads the 16-byte AES key for the given layout. OldBootMii images
// embed the key in their own trailer and ignore keyBlobPath; every other
// layout requires an external key blob.
func loadKey(imagePath, keyBlobPath string, layout Layout) ([keyLength]byte, error) {
	var key [keyLength]byte

	if layout == OldBootMii {
		f, err := os.Open(imagePath)
		if err != nil {
			return key, newError(BadKey, err, "could not open image to read embedded key")
		}
		defer f.Close()
		return readKeyAt(f, oldBootMiiKeyAt)
	}

	if keyBlobPath == "" {
		return key, newError(BadKey, nil, "no key blob provided for layout %s", layout)
	}
	f, err := os.Open(keyBlobPath)
	if err != nil {
		return key, newError(BadKey, err, "could not open key blob %s", keyBlobPath)
	}
	defer f.Close()
	return readKeyAt(f, keyBlobOffset)
}

func readKeyAt(f *os.File, offset int64) ([keyLength]byte, error) {
	var key [keyLength]byte
	buf := make([]byte, keyLength)
	n, err := f.ReadAt(buf, offset)
	if err != nil && n < keyLength {
		return key, newError(BadKey, err, "short read of AES key at offset 0x%x", offset)
	}
	if n < keyLength {
		return key, newError(BadKey, nil, "read %d bytes of AES key, need %d", n, keyLength)
	}
	copy(key[:], buf)
	return key, nil
}
