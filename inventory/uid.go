package inventory

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
)

// uidRecordLen is the fixed size of every uid.sys record (spec §3).
const uidRecordLen = 12

// Entry is the core's per-title output: gid, type, resolved name, and
// TMD/ticket status (spec §3 "Inventory entry").
type Entry struct {
	GID          string
	Type         string
	Name         string
	TitleStatus  string
	TicketStatus string
}

// decodeUIDRecord splits one 12-byte uid.sys record into a TitleID and its
// 4-character ASCII gid. The gid is derived from the minor (bytes 4..8),
// with any non-printable byte mapped to '.' (spec §3, §4.9).
func decodeUIDRecord(rec []byte) (TitleID, string) {
	major := hex.EncodeToString(rec[0:4])
	minor := hex.EncodeToString(rec[4:8])

	gid := make([]byte, 4)
	for i, b := range rec[4:8] {
		if b >= 0x20 && b <= 0x7E {
			gid[i] = b
		} else {
			gid[i] = '.'
		}
	}
	return TitleID{Major: major, Minor: minor}, string(gid)
}

// readUIDRecords reads uidPath in 12-byte chunks, skipping all-zero holes,
// and returns the (TitleID, gid) pairs in file order. Order is load-bearing:
// downstream consumers depend on it (spec §4.9, §5).
func readUIDRecords(uidPath string) ([]TitleID, map[TitleID]string, error) {
	f, err := os.Open(uidPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var order []TitleID
	gids := map[TitleID]string{}
	rec := make([]byte, uidRecordLen)
	var zero [uidRecordLen]byte

	for {
		_, err := io.ReadFull(f, rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if bytes.Equal(rec, zero[:]) {
			continue
		}
		id, gid := decodeUIDRecord(rec)
		order = append(order, id)
		gids[id] = gid
	}
	return order, gids, nil
}
