// Package nandcore is the forensic-reader core for raw Wii NAND dumps: it
// reconstructs the embedded SFFS filesystem, extracts a whitelisted
// subtree, and decodes the UID.sys/TMD/ticket/settings formats within it
// into a structured inventory and serial number (spec §1, §6).
//
// Everything outside the three entrypoints below — the interactive
// driver, HTML templating, HTTP upload, terminal colouring — is an
// external collaborator, not part of this package.
package nandcore

import (
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/hediibl/nandcore/inventory"
	"github.com/hediibl/nandcore/sffs"
	"github.com/hediibl/nandcore/settings"
)

// Inventory is the insertion-ordered TitleID → Entry mapping produced by
// BuildInventory.
type Inventory = inventory.Inventory

// TitleID and Entry are re-exported so callers never need to import the
// inventory package directly for the facade's return types.
type TitleID = inventory.TitleID
type Entry = inventory.Entry

// runLogger returns a logger scoped to one extraction run, tagged with a
// fresh correlation id so overlapping re-entrant extractions against
// different images can be told apart in a shared log stream (spec §5).
func runLogger() (logrus.FieldLogger, string) {
	runID := uuid.NewV4().String()
	return logrus.WithField("run_id", runID), runID
}

// ExtractNand reconstructs the SFFS filesystem in imagePath and writes the
// whitelisted subtree (/title, /ticket, /sys/uid.sys) under outputDir.
// keyBlobPath may be empty for OldBootMii images, which carry their own
// key; it is required for every other layout.
func ExtractNand(imagePath, keyBlobPath, outputDir string) error {
	log, runID := runLogger()

	img, err := sffs.Open(imagePath, keyBlobPath)
	if err != nil {
		log.WithError(err).Error("failed to open NAND image")
		return err
	}
	defer img.Close()

	log.WithField("layout", img.Layout().String()).Info("opened NAND image")

	if err := img.Extract(outputDir, log); err != nil {
		log.WithError(err).Error("extraction failed")
		return err
	}
	log.WithField("run_id", runID).Info("extraction complete")
	return nil
}

// ReadSerial recovers the factory serial number from the settings file at
// settingsPath (normally <outputDir>/title/.../data/setting.txt, already
// extracted by ExtractNand).
func ReadSerial(settingsPath string) (string, error) {
	return settings.ReadSerial(settingsPath)
}

// BuildInventory decodes outputDir/sys/uid.sys (as written by
// ExtractNand) into an insertion-ordered inventory, resolving names via
// the JSON database at namesDBPath (optional; an absent or malformed
// database yields empty names rather than an error).
func BuildInventory(outputDir, namesDBPath string) (*Inventory, error) {
	log, _ := runLogger()
	inv, err := inventory.Build(outputDir, namesDBPath)
	if err != nil {
		log.WithError(err).Warn("inventory build encountered an absorbed error")
	}
	log.WithField("count", inv.Len()).Info("built inventory")
	return inv, nil
}
