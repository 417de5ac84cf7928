package vectortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/vecpatch/pkg/elfimage"
	"github.com/grafana/vecpatch/pkg/elfimage/elftest"
)

func TestReadSlots(t *testing.T) {
	f := testFile(testTable(0x08000201, 0, 0x08000211))
	loc := testLocation(t, f)

	slots := ReadSlots(f.Bytes(), loc)
	require.Len(t, slots, tableEntries)

	assert.Equal(t, Slot{Index: 0, FileOffset: loc.TableOffset, Value: 0x20008000, Name: "initial SP"}, slots[0])
	assert.Equal(t, "Reset", slots[1].Name)
	assert.Equal(t, "SysTick", slots[15].Name)
	assert.Equal(t, Slot{Index: 16, FileOffset: loc.TableOffset + 64, Value: 0x08000201, Name: "IRQ0"}, slots[16])
	assert.Equal(t, "IRQ47", slots[63].Name)

	free := FreeSlots(slots)
	require.Len(t, free, tableEntries-ReservedSlots-2)
	assert.Equal(t, 17, free[0].Index)
	assert.Equal(t, 19, free[1].Index)
}

func TestReadSlotsTruncatedImage(t *testing.T) {
	image := elftest.Words(1, 2, 3)
	loc := Location{Section: elfimage.Section{Size: 0x100}, TableOffset: 0}
	slots := ReadSlots(image[:10], loc)
	require.Len(t, slots, 2)
	assert.Equal(t, uint32(2), slots[1].Value)
}

func TestSlotFree(t *testing.T) {
	assert.False(t, Slot{Index: 7}.Free())
	assert.True(t, Slot{Index: 16}.Free())
	assert.False(t, Slot{Index: 16, Value: 1}.Free())
}

func TestSymbolFor(t *testing.T) {
	symbols := []elfimage.Symbol{
		{Name: "$t", Value: 0x100},
		{Name: "Reset_Handler", Value: 0x100, Size: 8},
		{Name: "arm_handler", Value: 0x200, Size: 8},
	}
	assert.Equal(t, "Reset_Handler", SymbolFor(symbols, 0x101))
	assert.Equal(t, "Reset_Handler", SymbolFor(symbols, 0x100))
	assert.Equal(t, "arm_handler", SymbolFor(symbols, 0x200))
	assert.Equal(t, "", SymbolFor(symbols, 0x300))
	assert.Equal(t, "", SymbolFor(symbols, 0))
}
