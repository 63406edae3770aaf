package inventory

import (
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Inventory is the insertion-ordered TitleID → Entry mapping the core
// produces. Order follows uid.sys iteration, skipping holes (spec §4.9,
// §9: "use a container that preserves insertion order explicitly").
type Inventory = orderedmap.OrderedMap[TitleID, Entry]

// Build decodes root/sys/uid.sys and resolves every non-hole record into
// an Entry, consulting the names database at namesDBPath (loaded once; a
// missing or malformed database yields an empty map, not an error) and
// probing root for each title's TMD/ticket status.
func Build(root, namesDBPath string) (*Inventory, error) {
	uidPath := filepath.Join(root, "sys", "uid.sys")
	order, gids, err := readUIDRecords(uidPath)
	if err != nil {
		return orderedmap.New[TitleID, Entry](), nil
	}

	db := LoadNameDatabase(namesDBPath)
	out := orderedmap.New[TitleID, Entry](orderedmap.WithCapacity[TitleID, Entry](len(order)))

	for _, id := range order {
		gid := gids[id]
		entry := Entry{
			GID:          gid,
			Type:         classifyMajor(id.Major),
			Name:         resolveName(db, id, gid),
			TitleStatus:  probeTitle(root, id),
			TicketStatus: probeTicket(root, id),
		}
		out.Set(id, entry)
	}
	return out, nil
}
