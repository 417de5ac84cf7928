package vectortable

import (
	"encoding/binary"
	"fmt"

	"github.com/samber/lo"

	"github.com/grafana/vecpatch/pkg/elfimage"
)

// Cortex-M exception entries, indexed by slot.
var exceptionNames = [ReservedSlots]string{
	"initial SP",
	"Reset",
	"NMI",
	"HardFault",
	"MemManage",
	"BusFault",
	"UsageFault",
	"reserved",
	"reserved",
	"reserved",
	"reserved",
	"SVCall",
	"DebugMonitor",
	"reserved",
	"PendSV",
	"SysTick",
}

type Slot struct {
	Index      int
	FileOffset uint64
	Value      uint32
	Name       string
}

// Free reports whether the slot is an unused interrupt entry.
func (s Slot) Free() bool {
	return s.Index >= ReservedSlots && s.Value == 0
}

// SlotName returns the exception name of a reserved slot or IRQn for an
// interrupt entry.
func SlotName(i int) string {
	if i >= 0 && i < ReservedSlots {
		return exceptionNames[i]
	}
	return fmt.Sprintf("IRQ%d", i-ReservedSlots)
}

// ReadSlots returns the words of the table from slot 0 up to the end of the
// section, stopping early at the end of the image.
func ReadSlots(image []byte, loc Location) []Slot {
	end := loc.Section.Offset + loc.Section.Size
	if end > uint64(len(image)) {
		end = uint64(len(image))
	}
	var res []Slot
	for off := loc.TableOffset; off+WordSize <= end; off += WordSize {
		i := len(res)
		res = append(res, Slot{
			Index:      i,
			FileOffset: off,
			Value:      binary.LittleEndian.Uint32(image[off:]),
			Name:       SlotName(i),
		})
	}
	return res
}

// SymbolFor returns the name of a sized symbol at value, also matching the
// Thumb form with the low bit cleared.
func SymbolFor(symbols []elfimage.Symbol, value uint32) string {
	if value == 0 {
		return ""
	}
	sym, ok := lo.Find(symbols, func(s elfimage.Symbol) bool {
		return s.Size > 0 && s.Name != "" && (s.Value == uint64(value) || s.Value == uint64(value&^1))
	})
	if !ok {
		return ""
	}
	return sym.Name
}

// FreeSlots returns the interrupt entries that are currently zero.
func FreeSlots(slots []Slot) []Slot {
	return lo.Filter(slots, func(s Slot, _ int) bool {
		return s.Free()
	})
}
