package sffs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

// whitelisted top-level subpaths; anything else is pruned from the walk
// entirely (spec §4.6).
var whitelistedRoots = map[string]bool{
	"title":  true,
	"ticket": true,
	"sys":    true,
}

// extractor carries the state one extraction run shares across its
// recursive walk: the image to read from, the output root, the
// visited-index guard, and a logger.
type extractor struct {
	img       *Image
	outputDir string
	visited   *bitset.BitSet
	log       logrus.FieldLogger
}

// extract projects the whitelisted subtree of the image below the FST
// root into outputDir, which must already exist. It mirrors the source's
// extractFst(0, "", outDir, single=true) entrypoint: the root entry is
// visited with sibling traversal disabled, because the root has no
// siblings in this filesystem.
func (img *Image) extract(outputDir string, log logrus.FieldLogger) error {
	outputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return newError(UnsafePath, err, "could not resolve output root")
	}
	ex := &extractor{
		img:       img,
		outputDir: outputDir,
		visited:   bitset.New(1 << 16),
		log:       log,
	}
	return ex.walk(0, "", true, 0)
}

// walk decodes FST entry index and recurses. Sibling n+1 is visited before
// descending into sibling n's children (sib-before-sub), matching the
// source's recursion order and the on-disk creation order it produces.
func (ex *extractor) walk(index uint16, parentPath string, single bool, depth int) error {
	if depth > maxFstDepth {
		return newError(TruncatedImage, nil, "FST traversal exceeded max depth %d, likely corrupt image", maxFstDepth)
	}
	if ex.visited.Test(uint(index)) {
		return nil
	}
	ex.visited.Set(uint(index))

	e, err := readFst(ex.img.file, ex.img.geom, ex.img.locFst, index)
	if err != nil {
		return err
	}

	if e.sib != fstNone && !single {
		if err := ex.walk(e.sib, parentPath, false, depth); err != nil {
			return err
		}
	}

	if e.isDir {
		return ex.extractDir(e, parentPath, depth)
	}
	return ex.extractFile(e, parentPath)
}

// extractDir handles one directory entry: creates the host directory if
// its path is whitelisted (or it is the root), then recurses into its
// children one level deeper.
func (ex *extractor) extractDir(e fstEntry, parentPath string, depth int) error {
	logicalPath := e.name
	if parentPath != "" && parentPath != "/" {
		logicalPath = parentPath + "/" + e.name
	}

	if logicalPath != "/" {
		root := strings.SplitN(logicalPath, "/", 2)[0]
		if !whitelistedRoots[root] {
			ex.log.WithField("path", logicalPath).Debug("pruning non-whitelisted subtree")
			return nil
		}
	}

	hostPath := ex.outputDir
	if logicalPath != "/" {
		var err error
		hostPath, err = safeJoin(ex.outputDir, logicalPath)
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(hostPath, 0o755); err != nil {
		return newError(UnsafePath, err, "could not create directory %s", hostPath)
	}

	if e.sub == fstNone {
		return nil
	}
	return ex.walk(e.sub, logicalPath, false, depth+1)
}

// extractFile handles one file entry: sanitises the filename, checks the
// whitelist, chases the FAT chain decrypting clusters, then truncates to
// the logical size.
func (ex *extractor) extractFile(e fstEntry, parentPath string) error {
	name := strings.ReplaceAll(e.name, ":", "-")
	if strings.ContainsAny(name, "/\\") {
		return newError(UnsafePath, nil, "filename %q contains a path separator", e.name)
	}
	logicalPath := name
	if parentPath != "" && parentPath != "/" {
		logicalPath = parentPath + "/" + name
	}

	if !isWhitelistedFile(logicalPath) {
		ex.log.WithField("path", logicalPath).Debug("skipping non-whitelisted file")
		return nil
	}

	hostPath, err := safeJoin(ex.outputDir, logicalPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
		return newError(UnsafePath, err, "could not create parent directory for %s", hostPath)
	}

	if e.size == 0 {
		return os.WriteFile(hostPath, nil, 0o644)
	}

	img := ex.img
	clusterCount := (int64(e.size) + clusterLen - 1) / clusterLen
	buf := make([]byte, 0, clusterCount*clusterLen)
	c := e.sub
	for c < fatTerminator {
		data, err := readCluster(img.file, img.geom, img.key, c)
		if err != nil {
			return err
		}
		buf = append(buf, data...)
		c, err = readFat(img.file, img.geom, img.locFat, c)
		if err != nil {
			return err
		}
	}

	if int64(len(buf)) < int64(e.size) {
		return newError(TruncatedImage, nil, "assembled %d bytes for %s, expected at least %d", len(buf), logicalPath, e.size)
	}
	ex.log.WithField("path", logicalPath).WithField("size", e.size).Debug("extracted file")
	return os.WriteFile(hostPath, buf[:e.size], 0o644)
}

func isWhitelistedFile(logicalPath string) bool {
	return strings.HasPrefix(logicalPath, "title/") ||
		strings.HasPrefix(logicalPath, "ticket/") ||
		logicalPath == "sys/uid.sys"
}

// safeJoin resolves logicalPath under root and rejects any result that
// would escape root.
func safeJoin(root, logicalPath string) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(logicalPath))
	full = filepath.Clean(full)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", newError(UnsafePath, nil, "path %s escapes output root %s", logicalPath, root)
	}
	return full, nil
}
