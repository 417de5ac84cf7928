package vectortable

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// WordSize is the width of a vector table entry.
	WordSize = 4
	// ReservedSlots is the number of core exception entries preceding the
	// external interrupts. They are never picked automatically.
	ReservedSlots = 16
)

// ResolveSlot picks the table entry to overwrite. An explicit index is
// returned as is; it is bounds checked by Patch. Otherwise the first zero
// entry from ReservedSlots on is used. Only entries lying completely inside
// the section (and the image) are considered.
func ResolveSlot(image []byte, loc Location, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	end := loc.Section.Offset + loc.Section.Size
	if end > uint64(len(image)) {
		end = uint64(len(image))
	}
	for i := uint64(ReservedSlots); i < loc.Section.Size; i++ {
		off := loc.TableOffset + i*WordSize
		if off+WordSize > end {
			break
		}
		if binary.LittleEndian.Uint32(image[off:]) == 0 {
			return int(i), nil
		}
	}
	return 0, errors.Wrapf(ErrNoFreeSlot, "section %s", loc.Section.Name)
}
