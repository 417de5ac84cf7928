package vectortable

import (
	"github.com/samber/lo"

	"github.com/grafana/vecpatch/pkg/elfimage"
)

// Match tells how a requested handler address was verified against the
// symbol table.
type Match int

const (
	NoMatch Match = iota
	MatchAtBase
	MatchAtBasePlusOne
)

func (m Match) String() string {
	switch m {
	case MatchAtBase:
		return "exact"
	case MatchAtBasePlusOne:
		return "thumb"
	default:
		return "none"
	}
}

type Correction struct {
	Requested uint32
	Address   uint32
	Match     Match
	// Symbol is the name of the matched symbol.
	Symbol   string
	Disabled bool
}

// Changed reports whether the address to write differs from the requested one.
func (c Correction) Changed() bool {
	return c.Address != c.Requested
}

// Verified reports whether a sized symbol was found at the address.
func (c Correction) Verified() bool {
	return c.Match != NoMatch
}

// CorrectAddress looks up the requested handler address in the symbol table.
// A sized symbol at requested+1 means the handler is Thumb code and the
// address gets its low bit set. Zero-sized symbols are labels and ignored.
func CorrectAddress(requested uint32, symbols []elfimage.Symbol, disabled bool) Correction {
	res := Correction{
		Requested: requested,
		Address:   requested,
		Disabled:  disabled,
	}
	if disabled {
		return res
	}

	base := uint64(requested)
	sym, ok := lo.Find(symbols, func(s elfimage.Symbol) bool {
		return s.Size > 0 && (s.Value == base || s.Value == base+1)
	})
	if !ok {
		return res
	}
	res.Symbol = sym.Name
	if sym.Value == base+1 {
		res.Match = MatchAtBasePlusOne
		res.Address = uint32(sym.Value)
	} else {
		res.Match = MatchAtBase
	}
	return res
}
