package vectortable

import (
	"testing"

	"github.com/grafana/vecpatch/pkg/elfimage"
	"github.com/grafana/vecpatch/pkg/elfimage/elftest"
)

const tableEntries = 64

// testTable returns a 64 entry Cortex-M style vector table with the core
// exception entries populated and interrupt entries from 16 on set to irqs.
func testTable(irqs ...uint32) []uint32 {
	words := make([]uint32, tableEntries)
	words[0] = 0x20008000
	for i := 1; i < ReservedSlots; i++ {
		words[i] = 0x08000101
	}
	copy(words[ReservedSlots:], irqs)
	return words
}

func testFile(words []uint32, symbols ...elftest.Symbol) elftest.File {
	return elftest.File{
		Sections: []elftest.Section{
			{Name: ".vectors", Addr: 0, Data: elftest.Words(words...)},
			{Name: ".text", Addr: 0x08000100, Data: make([]byte, 0x100)},
		},
		Symbols: symbols,
	}
}

func testLocation(t testing.TB, f elftest.File) Location {
	t.Helper()
	data := f.Bytes()
	img, err := elfimage.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	loc, err := LocateSection(img.Sections, 0)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func intPtr(v int) *int {
	return &v
}
