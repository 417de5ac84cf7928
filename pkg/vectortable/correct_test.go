package vectortable

import (
	"debug/elf"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grafana/vecpatch/pkg/elfimage"
)

func TestCorrectAddress(t *testing.T) {
	symbols := []elfimage.Symbol{
		{Name: "$t", Value: 0x1000, Type: elf.STT_NOTYPE},
		{Name: "TIM2_IRQHandler", Value: 0x1001, Size: 0x24, Type: elf.STT_FUNC},
		{Name: "arm_handler", Value: 0x2000, Size: 0x10, Type: elf.STT_FUNC},
		{Name: "empty", Value: 0x3001},
		{Name: "first", Value: 0x4000, Size: 4, Type: elf.STT_FUNC},
		{Name: "second", Value: 0x4001, Size: 4, Type: elf.STT_FUNC},
	}

	for _, tc := range []struct {
		name      string
		requested uint32
		disabled  bool
		want      Correction
	}{
		{
			name:      "thumb handler gets low bit set",
			requested: 0x1000,
			want:      Correction{Requested: 0x1000, Address: 0x1001, Match: MatchAtBasePlusOne, Symbol: "TIM2_IRQHandler"},
		},
		{
			name:      "already corrected thumb address",
			requested: 0x1001,
			want:      Correction{Requested: 0x1001, Address: 0x1001, Match: MatchAtBase, Symbol: "TIM2_IRQHandler"},
		},
		{
			name:      "arm handler is kept",
			requested: 0x2000,
			want:      Correction{Requested: 0x2000, Address: 0x2000, Match: MatchAtBase, Symbol: "arm_handler"},
		},
		{
			name:      "zero sized symbols are ignored",
			requested: 0x3000,
			want:      Correction{Requested: 0x3000, Address: 0x3000, Match: NoMatch},
		},
		{
			name:      "unknown address",
			requested: 0x5000,
			want:      Correction{Requested: 0x5000, Address: 0x5000, Match: NoMatch},
		},
		{
			name:      "first matching symbol wins",
			requested: 0x4000,
			want:      Correction{Requested: 0x4000, Address: 0x4000, Match: MatchAtBase, Symbol: "first"},
		},
		{
			name:      "disabled",
			requested: 0x1000,
			disabled:  true,
			want:      Correction{Requested: 0x1000, Address: 0x1000, Match: NoMatch, Disabled: true},
		},
		{
			name:      "max address",
			requested: 0xffffffff,
			want:      Correction{Requested: 0xffffffff, Address: 0xffffffff, Match: NoMatch},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := CorrectAddress(tc.requested, symbols, tc.disabled)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Address != tc.requested, got.Changed())
		})
	}
}

func TestCorrectionVerified(t *testing.T) {
	assert.False(t, Correction{Match: NoMatch}.Verified())
	assert.True(t, Correction{Match: MatchAtBase}.Verified())
	assert.True(t, Correction{Match: MatchAtBasePlusOne}.Verified())

	assert.Equal(t, "none", NoMatch.String())
	assert.Equal(t, "exact", MatchAtBase.String())
	assert.Equal(t, "thumb", MatchAtBasePlusOne.String())
}
