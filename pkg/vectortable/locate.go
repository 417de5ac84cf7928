package vectortable

import (
	"github.com/pkg/errors"

	"github.com/grafana/vecpatch/pkg/elfimage"
)

// Location is where the vector table lives in the image.
type Location struct {
	Section elfimage.Section
	// TableOffset is the file offset of slot 0.
	TableOffset uint64
}

// LocateSection returns the first section, in section header order, that
// contains the virtual address addr.
func LocateSection(sections []elfimage.Section, addr uint64) (Location, error) {
	for _, s := range sections {
		if s.Contains(addr) {
			return Location{
				Section:     s,
				TableOffset: s.Offset + (addr - s.Addr),
			}, nil
		}
	}
	return Location{}, errors.Wrapf(ErrSectionNotFound, "address 0x%x", addr)
}
