// Package inventory decodes a console's UID.sys log into a structured,
// insertion-ordered inventory of installed titles, resolving each title's
// human-readable name and its TMD/ticket status (spec §4.8, §4.9).
package inventory

import "fmt"

// TitleID is the canonical "MAJOR-MINOR" identifier, each half an 8-digit
// lowercase hex string.
type TitleID struct {
	Major string
	Minor string
}

// String renders the canonical "MMMMMMMM-mmmmmmmm" form.
func (t TitleID) String() string {
	return fmt.Sprintf("%s-%s", t.Major, t.Minor)
}

// SaveDataMajor is the one major type that never has a ticket (spec §3,
// §4.8).
const SaveDataMajor = "00010000"

// IOSMajor is the major type whose name, unless the title is in the
// special-id table, is derived from its minor value rather than looked up
// in the names database.
const IOSMajor = "00000001"

// titleTypes is the closed major-type classification table (spec §3).
var titleTypes = map[string]string{
	"00000000": "Development title",
	"00000001": "System title",
	"00010000": "Save data",
	"00010001": "Installed title",
	"00010002": "Preinstalled channel",
	"00010004": "Game channel",
	"00010005": "DLC",
	"00010008": "Hidden title",
}

// classifyMajor returns the human-readable type for a major hex string,
// or "Unknown" if it is outside the closed table.
func classifyMajor(major string) string {
	if t, ok := titleTypes[major]; ok {
		return t
	}
	return "Unknown"
}
