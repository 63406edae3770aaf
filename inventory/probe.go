package inventory

import (
	"fmt"
	"os"
	"path/filepath"
)

// tmdVersionOffset is the offset within a TMD of the big-endian 16-bit
// installed content version (spec §4.8).
const tmdVersionOffset = 0x01DC

// probeTitle reports the title status for id against the extracted tree
// rooted at root: "Yes"/"No" for save data, "vN" or "No" for everything
// else. Missing or short TMDs are absorbed into "No", never surfaced as
// an error (spec §7: MissingTmd, ShortTmd are recovered locally).
func probeTitle(root string, id TitleID) string {
	tmdPath := filepath.Join(root, "title", id.Major, id.Minor, "content", "title.tmd")

	if id.Major == SaveDataMajor {
		if fileExists(tmdPath) {
			return "Yes"
		}
		return "No"
	}

	f, err := os.Open(tmdPath)
	if err != nil {
		return "No"
	}
	defer f.Close()

	buf := make([]byte, 2)
	n, err := f.ReadAt(buf, tmdVersionOffset)
	if err != nil || n < 2 {
		return "No"
	}
	return fmt.Sprintf("v%d", int(buf[0])<<8|int(buf[1]))
}

// probeTicket reports the ticket status for id: "N/A" for save data
// (which never has a ticket), otherwise "Yes"/"No" by presence.
func probeTicket(root string, id TitleID) string {
	if id.Major == SaveDataMajor {
		return "N/A"
	}
	ticketPath := filepath.Join(root, "ticket", id.Major, id.Minor+".tik")
	if fileExists(ticketPath) {
		return "Yes"
	}
	return "No"
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
