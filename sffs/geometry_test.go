package sffs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	cases := []struct {
		size int64
		want Layout
	}{
		{sizeNoEcc, NoEcc},
		{sizeEcc, Ecc},
		{sizeOldBootMii, OldBootMii},
	}
	for _, c := range cases {
		got, err := detectLayout(c.size)
		if err != nil {
			t.Fatalf("detectLayout(%d): %v", c.size, err)
		}
		if got != c.want {
			t.Errorf("detectLayout(%d) = %v, want %v", c.size, got, c.want)
		}
	}
}

func TestDetectLayoutUnknownSize(t *testing.T) {
	_, err := detectLayout(100)
	if err == nil {
		t.Fatal("expected an error for an unrecognized image size")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != UnknownGeometry {
		t.Fatalf("err = %v, want Kind UnknownGeometry", err)
	}
}

func TestLoadKeyFromBlob(t *testing.T) {
	dir := t.TempDir()
	blobPath := filepath.Join(dir, "keys.bin")
	buf := make([]byte, 0x168)
	want := []byte("0123456789ABCDEF")
	copy(buf[keyBlobOffset:], want)
	if err := os.WriteFile(blobPath, buf, 0o644); err != nil {
		t.Fatalf("write key blob: %v", err)
	}

	key, err := loadKey("ignored.img", blobPath, NoEcc)
	if err != nil {
		t.Fatalf("loadKey: %v", err)
	}
	if string(key[:]) != string(want) {
		t.Fatalf("key = %q, want %q", key, want)
	}
}

func TestLoadKeyMissingBlobForNonEmbeddedLayout(t *testing.T) {
	_, err := loadKey("ignored.img", "", NoEcc)
	if err == nil {
		t.Fatal("expected an error when no key blob is given for a non-OldBootMii layout")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != BadKey {
		t.Fatalf("err = %v, want Kind BadKey", err)
	}
}

func TestLoadKeyEmbeddedOldBootMii(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "nand.bin")
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.Truncate(oldBootMiiKeyAt + keyLength); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	want := []byte("FEDCBA9876543210")
	if _, err := f.WriteAt(want, oldBootMiiKeyAt); err != nil {
		t.Fatalf("write embedded key: %v", err)
	}
	f.Close()

	key, err := loadKey(imgPath, "", OldBootMii)
	if err != nil {
		t.Fatalf("loadKey: %v", err)
	}
	if string(key[:]) != string(want) {
		t.Fatalf("key = %q, want %q", key, want)
	}
}
