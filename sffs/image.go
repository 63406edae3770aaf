package sffs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Image is the aggregate of an opened NAND image handle, its loaded AES
// key, and the derived FAT/FST base offsets. Everything that decodes
// bytes borrows this aggregate immutably; every read here goes through
// the *os.File's positional ReadAt, so no shared cursor is moved and
// concurrent readers never race on it.
type Image struct {
	file   *os.File
	size   int64
	layout Layout
	key    [keyLength]byte
	geom   geometry
	locFat int64
	locFst int64
}

// Open opens imagePath, classifies its layout by exact byte-size, loads
// the AES key (from keyBlobPath, or from the image itself for
// OldBootMii), and locates the live superblock. The returned Image holds
// the file open for read-only positional access until Close is called.
func Open(imagePath, keyBlobPath string) (*Image, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, newError(UnknownGeometry, err, "could not open image %s", imagePath)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError(UnknownGeometry, err, "could not stat image %s", imagePath)
	}

	layout, err := detectLayout(st.Size())
	if err != nil {
		f.Close()
		return nil, err
	}

	key, err := loadKey(imagePath, keyBlobPath, layout)
	if err != nil {
		f.Close()
		return nil, err
	}

	geom := geometryFor(layout)
	sbLoc, err := locateSuperblock(f, geom)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Image{
		file:   f,
		size:   st.Size(),
		layout: layout,
		key:    key,
		geom:   geom,
		locFat: sbLoc,
		locFst: sbLoc + 0x0C + geom.fatLen,
	}, nil
}

// Layout reports which of the three physical NAND layouts this image uses.
func (img *Image) Layout() Layout {
	return img.layout
}

// Close releases the underlying file handle. Safe to call once; required
// on both success and failure paths.
func (img *Image) Close() error {
	return img.file.Close()
}

// Extract projects the whitelisted subtree (/title, /ticket, /sys/uid.sys)
// to outputDir, which is created if missing. log receives per-file and
// per-directory progress at Debug level; pass logrus.StandardLogger() (or
// any logrus.FieldLogger) from the caller.
func (img *Image) Extract(outputDir string, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return newError(UnsafePath, err, "could not create output root %s", outputDir)
	}
	return img.extract(outputDir, log)
}
