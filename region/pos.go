package region

import (
	"fmt"

	"github.com/arloliu/nbt/errs"
)

const (
	// Width is the number of chunk columns along each axis of a region.
	Width = 32
	// SlotCount is the number of chunk slots in a region.
	SlotCount = Width * Width
	// SectorSize is the allocation unit of a region file in bytes.
	SectorSize = 4096
	// HeaderSize is the location table plus the timestamp table.
	HeaderSize = 2 * SectorSize
	// MaxSectorCount is the largest sector count one location entry can record.
	MaxSectorCount = 255
	// maxSectorOffset is the largest sector offset a 3-byte location field holds.
	maxSectorOffset = 1<<24 - 1
)

// Pos is a chunk position inside a region, each coordinate in [0, 32).
type Pos struct {
	X, Z int
}

// Valid reports whether both coordinates are in [0, 32).
func (p Pos) Valid() bool {
	return p.X >= 0 && p.X < Width && p.Z >= 0 && p.Z < Width
}

// Index returns the header slot of p. It must only be called on a valid Pos.
func (p Pos) Index() int {
	return p.X + p.Z*Width
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// SlotIndex returns the header slot x + z*32 of chunk (x, z).
//
// Returns errs.ErrInvalidCoordinates when x or z is outside [0, 32).
func SlotIndex(x, z int) (int, error) {
	p := Pos{X: x, Z: z}
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidCoordinates, p)
	}

	return p.Index(), nil
}

// PosFromIndex is the inverse of SlotIndex.
func PosFromIndex(i int) (Pos, error) {
	if i < 0 || i >= SlotCount {
		return Pos{}, fmt.Errorf("%w: slot %d", errs.ErrInvalidCoordinates, i)
	}

	return Pos{X: i % Width, Z: i / Width}, nil
}
