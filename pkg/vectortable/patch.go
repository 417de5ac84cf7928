package vectortable

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Patch writes value little-endian into the given slot of the table and
// returns the file offset written. Either all four bytes are written or none.
func Patch(image []byte, loc Location, slot int, value uint32) (uint64, error) {
	if slot < 0 || uint64(slot) > (math.MaxUint64-loc.TableOffset-WordSize)/WordSize {
		return 0, errors.Wrapf(ErrOutOfBounds, "entry %d", slot)
	}
	off := loc.TableOffset + uint64(slot)*WordSize
	if off+WordSize > uint64(len(image)) {
		return 0, errors.Wrapf(ErrOutOfBounds, "entry %d at file offset 0x%x, image is 0x%x bytes", slot, off, len(image))
	}
	binary.LittleEndian.PutUint32(image[off:off+WordSize], value)
	return off, nil
}
