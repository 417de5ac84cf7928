// Package elfimage provides a read-only, in-memory view of an ELF image:
// its header properties, section headers and symbol tables.
package elfimage

import (
	"bytes"
	"debug/elf"

	"github.com/pkg/errors"
)

// Header holds the identification fields the patcher cares about.
type Header struct {
	Class   elf.Class
	Data    elf.Data
	Machine elf.Machine
}

func (h Header) Is64() bool {
	return h.Class == elf.ELFCLASS64
}

func (h Header) LittleEndian() bool {
	return h.Data == elf.ELFDATA2LSB
}

// Section describes a section header.
type Section struct {
	Name   string
	Type   elf.SectionType
	Addr   uint64
	Offset uint64
	Size   uint64
}

// Contains reports whether the virtual address addr falls inside the section.
func (s Section) Contains(addr uint64) bool {
	return addr >= s.Addr && addr-s.Addr < s.Size
}

type Symbol struct {
	Name  string
	Value uint64
	Size  uint64
	Type  elf.SymType
}

// Image is a parsed ELF file. Sections keep the order of the section header
// table and Symbols the order of .symtab followed by .dynsym.
type Image struct {
	Header
	Sections []Section
	Symbols  []Symbol
}

// ParseHeader reads only the identification fields of data, without
// touching the symbol tables.
func ParseHeader(data []byte) (Header, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return Header{}, errors.Wrap(err, "failed to parse ELF")
	}
	defer f.Close()
	return Header{
		Class:   f.Class,
		Data:    f.Data,
		Machine: f.Machine,
	}, nil
}

// Parse reads the ELF structures out of data. The returned Image does not
// retain data.
func Parse(data []byte) (*Image, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ELF")
	}
	defer f.Close()

	res := &Image{
		Header: Header{
			Class:   f.Class,
			Data:    f.Data,
			Machine: f.Machine,
		},
		Sections: make([]Section, 0, len(f.Sections)),
	}
	for i := range f.Sections {
		s := &f.Sections[i].SectionHeader
		res.Sections = append(res.Sections, Section{
			Name:   s.Name,
			Type:   s.Type,
			Addr:   s.Addr,
			Offset: s.Offset,
			Size:   s.Size,
		})
	}

	sym, err := f.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, errors.Wrap(err, "failed to read .symtab")
	}
	dynsym, err := f.DynamicSymbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, errors.Wrap(err, "failed to read .dynsym")
	}
	res.Symbols = make([]Symbol, 0, len(sym)+len(dynsym))
	res.Symbols = appendSymbols(res.Symbols, sym)
	res.Symbols = appendSymbols(res.Symbols, dynsym)
	return res, nil
}

func appendSymbols(dst []Symbol, src []elf.Symbol) []Symbol {
	for _, s := range src {
		dst = append(dst, Symbol{
			Name:  s.Name,
			Value: s.Value,
			Size:  s.Size,
			Type:  elf.ST_TYPE(s.Info),
		})
	}
	return dst
}

// section returns the first section with the given name, or nil.
func (img *Image) section(name string) *Section {
	for i := range img.Sections {
		s := &img.Sections[i]
		if s.Name == name {
			return s
		}
	}
	return nil
}
