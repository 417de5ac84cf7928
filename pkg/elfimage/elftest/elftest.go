// Package elftest builds small ELF images in memory for unit tests.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Section is a section to be emitted with its contents.
type Section struct {
	Name string
	Type elf.SectionType
	Addr uint64
	Data []byte
	// Size overrides len(Data) in the section header when non-zero,
	// e.g. for SHT_NOBITS sections.
	Size uint64
}

type Symbol struct {
	Name    string
	Value   uint64
	Size    uint64
	Type    elf.SymType
	Section string // name of the section the symbol is defined in, if any
}

// File describes the image to build. The zero value builds a little-endian
// 32-bit ARM executable without sections.
type File struct {
	Class    elf.Class
	Data     elf.Data
	Machine  elf.Machine
	Sections []Section
	Symbols  []Symbol
	// TruncatedSymtab cuts the last byte off .symtab, making it unreadable.
	TruncatedSymtab bool
}

const align = 8

// Bytes serializes f. Layout: header, section contents, .symtab, .strtab,
// .shstrtab, then the section header table.
func (f File) Bytes() []byte {
	class := f.Class
	if class == elf.ELFCLASSNONE {
		class = elf.ELFCLASS32
	}
	data := f.Data
	if data == elf.ELFDATANONE {
		data = elf.ELFDATA2LSB
	}
	machine := f.Machine
	if machine == elf.EM_NONE {
		machine = elf.EM_ARM
	}
	var order binary.ByteOrder = binary.LittleEndian
	if data == elf.ELFDATA2MSB {
		order = binary.BigEndian
	}
	is64 := class == elf.ELFCLASS64

	type shdr struct {
		name      uint32
		typ       elf.SectionType
		flags     elf.SectionFlag
		addr      uint64
		off       uint64
		size      uint64
		link      uint32
		info      uint32
		addralign uint64
		entsize   uint64
	}

	shstrtab := newStrtab()
	strtab := newStrtab()
	buf := new(bytes.Buffer)

	hdrSize := 52
	if is64 {
		hdrSize = 64
	}
	buf.Write(make([]byte, hdrSize))

	pad := func() {
		for buf.Len()%align != 0 {
			buf.WriteByte(0)
		}
	}

	headers := []shdr{{}}
	sectionIndex := map[string]int{}
	for _, s := range f.Sections {
		pad()
		typ := s.Type
		if typ == elf.SHT_NULL {
			typ = elf.SHT_PROGBITS
		}
		size := s.Size
		if size == 0 {
			size = uint64(len(s.Data))
		}
		h := shdr{
			name:      shstrtab.add(s.Name),
			typ:       typ,
			flags:     elf.SHF_ALLOC,
			addr:      s.Addr,
			off:       uint64(buf.Len()),
			size:      size,
			addralign: 4,
		}
		if typ != elf.SHT_NOBITS {
			buf.Write(s.Data)
		}
		sectionIndex[s.Name] = len(headers)
		headers = append(headers, h)
	}

	symtabIndex := len(headers)
	strtabIndex := symtabIndex + 1
	shstrtabIndex := symtabIndex + 2

	pad()
	symEntSize := uint64(elf.Sym32Size)
	if is64 {
		symEntSize = elf.Sym64Size
	}
	symOff := uint64(buf.Len())
	if is64 {
		_ = binary.Write(buf, order, elf.Sym64{})
	} else {
		_ = binary.Write(buf, order, elf.Sym32{})
	}
	for _, s := range f.Symbols {
		typ := s.Type
		if typ == elf.STT_NOTYPE && s.Size > 0 {
			typ = elf.STT_FUNC
		}
		info := elf.ST_INFO(elf.STB_GLOBAL, typ)
		shndx := uint16(elf.SHN_ABS)
		if i, ok := sectionIndex[s.Section]; ok {
			shndx = uint16(i)
		}
		name := strtab.add(s.Name)
		if is64 {
			_ = binary.Write(buf, order, elf.Sym64{Name: name, Info: info, Shndx: shndx, Value: s.Value, Size: s.Size})
		} else {
			_ = binary.Write(buf, order, elf.Sym32{Name: name, Value: uint32(s.Value), Size: uint32(s.Size), Info: info, Shndx: shndx})
		}
	}
	if f.TruncatedSymtab {
		buf.Truncate(buf.Len() - 1)
	}
	headers = append(headers, shdr{
		name:      shstrtab.add(".symtab"),
		typ:       elf.SHT_SYMTAB,
		off:       symOff,
		size:      uint64(buf.Len()) - symOff,
		link:      uint32(strtabIndex),
		info:      1,
		addralign: 4,
		entsize:   symEntSize,
	})

	strOff := uint64(buf.Len())
	buf.Write(strtab.bytes())
	headers = append(headers, shdr{
		name:      shstrtab.add(".strtab"),
		typ:       elf.SHT_STRTAB,
		off:       strOff,
		size:      uint64(buf.Len()) - strOff,
		addralign: 1,
	})

	shstrName := shstrtab.add(".shstrtab")
	shstrOff := uint64(buf.Len())
	buf.Write(shstrtab.bytes())
	headers = append(headers, shdr{
		name:      shstrName,
		typ:       elf.SHT_STRTAB,
		off:       shstrOff,
		size:      uint64(buf.Len()) - shstrOff,
		addralign: 1,
	})

	pad()
	shoff := uint64(buf.Len())
	for _, h := range headers {
		if is64 {
			_ = binary.Write(buf, order, elf.Section64{
				Name: h.name, Type: uint32(h.typ), Flags: uint64(h.flags),
				Addr: h.addr, Off: h.off, Size: h.size,
				Link: h.link, Info: h.info, Addralign: h.addralign, Entsize: h.entsize,
			})
		} else {
			_ = binary.Write(buf, order, elf.Section32{
				Name: h.name, Type: uint32(h.typ), Flags: uint32(h.flags),
				Addr: uint32(h.addr), Off: uint32(h.off), Size: uint32(h.size),
				Link: h.link, Info: h.info, Addralign: uint32(h.addralign), Entsize: uint32(h.entsize),
			})
		}
	}

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(class)
	ident[elf.EI_DATA] = byte(data)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	out := buf.Bytes()
	hdr := new(bytes.Buffer)
	if is64 {
		_ = binary.Write(hdr, order, elf.Header64{
			Ident: ident, Type: uint16(elf.ET_EXEC), Machine: uint16(machine), Version: uint32(elf.EV_CURRENT),
			Shoff: shoff, Ehsize: 64, Phentsize: 56, Shentsize: 64,
			Shnum: uint16(len(headers)), Shstrndx: uint16(shstrtabIndex),
		})
	} else {
		_ = binary.Write(hdr, order, elf.Header32{
			Ident: ident, Type: uint16(elf.ET_EXEC), Machine: uint16(machine), Version: uint32(elf.EV_CURRENT),
			Shoff: uint32(shoff), Ehsize: 52, Phentsize: 32, Shentsize: 40,
			Shnum: uint16(len(headers)), Shstrndx: uint16(shstrtabIndex),
		})
	}
	copy(out, hdr.Bytes())
	return out
}

// SectionOffset returns the file offset at which Bytes places the contents
// of the named section, or -1.
func (f File) SectionOffset(name string) int {
	hdrSize := 52
	if f.Class == elf.ELFCLASS64 {
		hdrSize = 64
	}
	off := hdrSize
	for _, s := range f.Sections {
		for off%align != 0 {
			off++
		}
		if s.Name == name {
			return off
		}
		if s.Type != elf.SHT_NOBITS {
			off += len(s.Data)
		}
	}
	return -1
}

type strtab struct {
	buf []byte
}

func newStrtab() *strtab {
	return &strtab{buf: []byte{0}}
}

func (t *strtab) add(s string) uint32 {
	if s == "" {
		return 0
	}
	off := uint32(len(t.buf))
	t.buf = append(t.buf, s...)
	t.buf = append(t.buf, 0)
	return off
}

func (t *strtab) bytes() []byte {
	return t.buf
}

// Words encodes vals as consecutive little-endian 32-bit words.
func Words(vals ...uint32) []byte {
	res := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(res[4*i:], v)
	}
	return res
}
