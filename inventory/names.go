package inventory

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// specialIDs hard-codes the handful of titles whose name is fixed
// regardless of any names database (spec §4.9, scenario S4).
var specialIDs = map[string]string{
	"00000000-87654321": "sdboot2",
	"00000001-00000000": "IOS Superuser",
	"00000001-00000001": "boot1 glitch",
	"00000001-00000002": "System Menu",
	"00000001-00000100": "BC",
	"00000001-00000101": "MIOS",
}

// NameDatabase is a flat gid → name map loaded from JSON.
type NameDatabase map[string]string

// LoadNameDatabase loads a flat string→string JSON map from path. A
// missing or malformed file yields an empty map rather than an error
// (spec §7: MissingNamesDb, MalformedNamesDb are recovered locally).
func LoadNameDatabase(path string) NameDatabase {
	db := NameDatabase{}
	if path == "" {
		return db
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return db
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return NameDatabase{}
	}
	return db
}

// resolveName runs the closed name-resolution cascade: special-id table,
// then the IOS derivation rule, then the names database with its
// regional-fallback rule, then empty. Written as a fixed sequence of
// early returns, so the first branch that applies decides the name.
func resolveName(db NameDatabase, id TitleID, gid string) string {
	key := id.String()
	if name, ok := specialIDs[key]; ok {
		return name
	}
	if id.Major == IOSMajor {
		return resolveIOSName(id.Minor)
	}
	return resolveFromDatabase(db, gid)
}

// resolveIOSName parses minor as hex and renders "IOS{n}". Any minor that
// fails to parse (should not happen for well-formed images) resolves to
// empty, matching the source's bare try/except ValueError.
func resolveIOSName(minor string) string {
	n, err := strconv.ParseInt(minor, 16, 64)
	if err != nil {
		return ""
	}
	return "IOS" + strconv.FormatInt(n, 10)
}

// resolveFromDatabase looks gid up directly; if gid starts with "U" and
// the direct lookup misses, it retries with the leading "U" rewritten to
// "R" (the PAL/NTSC region-code convention; spec §4.9, scenario S5).
func resolveFromDatabase(db NameDatabase, gid string) string {
	if name, ok := db[gid]; ok && name != "" {
		return name
	}
	if strings.HasPrefix(gid, "U") {
		regional := "R" + gid[1:]
		if name, ok := db[regional]; ok {
			return name
		}
	}
	return ""
}
