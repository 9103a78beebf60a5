package tiled

// GID is a global tile id as stored in layer data. The upper bits carry the
// flip flags.
type GID uint32

const (
	FlipHorizontal GID = 0x80000000
	FlipVertical   GID = 0x40000000
	FlipDiagonal   GID = 0x20000000
	RotateHex120   GID = 0x10000000

	flagMask = FlipHorizontal | FlipVertical | FlipDiagonal | RotateHex120
)

// ID returns the gid with all flip flags cleared. Zero means no tile.
func (g GID) ID() uint32 {
	return uint32(g &^ flagMask)
}

func (g GID) FlippedHorizontally() bool { return g&FlipHorizontal != 0 }
func (g GID) FlippedVertically() bool   { return g&FlipVertical != 0 }
func (g GID) FlippedDiagonally() bool   { return g&FlipDiagonal != 0 }
func (g GID) RotatedHex120() bool       { return g&RotateHex120 != 0 }
