package sffs

import (
	"crypto/aes"
	"crypto/cipher"
	"io"
)

// clusterLen is the logical (decrypted) size of every cluster, regardless
// of layout: 8 pages of 0x800 usable bytes each.
const clusterLen = 0x4000

// readCluster reads physical cluster c, strips the OOB tail from each of
// its 8 pages, and decrypts the resulting 16 KiB with AES-CBC under a
// freshly zeroed IV. Clusters are independent decryption units: the IV is
// never carried across calls, so callers may read clusters in any order.
func readCluster(r io.ReaderAt, g geometry, key [keyLength]byte, c uint16) ([]byte, error) {
	offset := int64(c) * g.physClusterLen

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, newError(BadKey, err, "could not initialize AES cipher")
	}

	buf := make([]byte, clusterLen)
	page := make([]byte, g.pageLen)
	for i := 0; i < 8; i++ {
		n, err := r.ReadAt(page, offset+int64(i)*g.pageLen)
		if err != nil && n < len(page) {
			return nil, newError(TruncatedImage, err, "short read of page %d in cluster %d", i, c)
		}
		copy(buf[i*0x800:(i+1)*0x800], page[:0x800])
	}

	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(buf, buf)

	// the source truncates with [:0x4000] even though exactly 0x4000 bytes
	// were ever assembled; preserved here as a defensive no-op (spec Open
	// Questions).
	return buf[:clusterLen], nil
}
