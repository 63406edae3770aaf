package sffs

import (
	"io"
)

// locateSuperblock scans the wear-levelled superblock ring and returns the
// absolute offset of the copy with the highest generation counter.
//
// The ring is walked in order, tracking a running maximum generation. The
// first time the current generation is not strictly greater than the
// running maximum, the *previous* location held the true maximum and is
// returned. A ring that never decreases (including a one-element ring)
// cannot be located this way and returns NoSuperblock — this mirrors the
// source filesystem's own search exactly (see spec Open Questions).
func locateSuperblock(r io.ReaderAt, g geometry) (int64, error) {
	var maxGeneration uint32
	generationBuf := make([]byte, 4)

	for loc := g.sbBase; loc < g.sbEnd; loc += g.sbStep {
		n, err := r.ReadAt(generationBuf, loc+4)
		if err != nil && n < len(generationBuf) {
			return 0, newError(TruncatedImage, err, "short read of superblock generation at 0x%x", loc)
		}
		generation := beU32(generationBuf)
		if generation <= maxGeneration {
			return loc - g.sbStep, nil
		}
		maxGeneration = generation
	}
	return 0, newError(NoSuperblock, nil, "superblock ring scan never observed a generation decrease")
}
