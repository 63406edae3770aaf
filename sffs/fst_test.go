package sffs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFstEntry(t *testing.T, f *os.File, g geometry, fstBase int64, index uint16, name string, isDir bool, sub, sib uint16, size uint32) {
	t.Helper()
	kk := int64(index)
	offset := fstBase + (kk/0x40*g.fstEccPad+kk)*fstEntryLen

	buf := make([]byte, fstEntryLen)
	copy(buf[0:12], name)
	if !isDir {
		buf[12] = 1
	}
	buf[14], buf[15] = byte(sub>>8), byte(sub)
	buf[16], buf[17] = byte(sib>>8), byte(sib)
	buf[18], buf[19], buf[20], buf[21] = byte(size>>24), byte(size>>16), byte(size>>8), byte(size)
	buf[26], buf[27] = 0x12, 0x34 // gid, exercised below

	if _, err := f.WriteAt(buf, offset); err != nil {
		t.Fatalf("write FST entry %d: %v", index, err)
	}
}

func TestReadFstDecodesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fst.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	g := geometryFor(NoEcc)
	const fstBase = int64(0)
	if err := f.Truncate(0x1000); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	writeFstEntry(t, f, g, fstBase, 0, "game.bin", false, 7, fstNone, 0x1234)

	e, err := readFst(f, g, fstBase, 0)
	if err != nil {
		t.Fatalf("readFst: %v", err)
	}
	if e.name != "game.bin" {
		t.Fatalf("name = %q, want game.bin", e.name)
	}
	if e.isDir {
		t.Fatal("isDir = true, want false")
	}
	if e.sub != 7 {
		t.Fatalf("sub = %d, want 7", e.sub)
	}
	if e.sib != fstNone {
		t.Fatalf("sib = 0x%x, want fstNone", e.sib)
	}
	if e.size != 0x1234 {
		t.Fatalf("size = 0x%x, want 0x1234", e.size)
	}
	if e.gid != 0x1234 {
		t.Fatalf("gid = 0x%x, want 0x1234", e.gid)
	}
}

func TestReadFstDirectoryMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fst.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	g := geometryFor(NoEcc)
	const fstBase = int64(0)
	if err := f.Truncate(0x1000); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	writeFstEntry(t, f, g, fstBase, 0, "title", true, 1, 2, 0)

	e, err := readFst(f, g, fstBase, 0)
	if err != nil {
		t.Fatalf("readFst: %v", err)
	}
	if !e.isDir {
		t.Fatal("isDir = false, want true")
	}
	if e.sub != 1 || e.sib != 2 {
		t.Fatalf("sub/sib = %d/%d, want 1/2", e.sub, e.sib)
	}
}

func TestReadFstNameTrimsTrailingNulls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fst.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	g := geometryFor(NoEcc)
	const fstBase = int64(0)
	if err := f.Truncate(0x1000); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	writeFstEntry(t, f, g, fstBase, 0, "a", true, fstNone, fstNone, 0)

	e, err := readFst(f, g, fstBase, 0)
	if err != nil {
		t.Fatalf("readFst: %v", err)
	}
	if e.name != "a" {
		t.Fatalf("name = %q, want %q", e.name, "a")
	}
}
