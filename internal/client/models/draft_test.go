package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCents(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  uint64
	}{
		{name: "free ignores price", draft: Draft{PriceType: PriceFree, Price: "9.99"}, want: 0},
		{name: "paid", draft: Draft{PriceType: PricePaid, Price: "29.99"}, want: 2999},
		{name: "paid rounds", draft: Draft{PriceType: PricePaid, Price: "19.999"}, want: 2000},
		{name: "paid integer", draft: Draft{PriceType: PricePaid, Price: " 5 "}, want: 500},
		{name: "paid negative", draft: Draft{PriceType: PricePaid, Price: "-1"}, want: 0},
		{name: "paid garbage", draft: Draft{PriceType: PricePaid, Price: "ten"}, want: 0},
		{name: "paid leading zeros", draft: Draft{PriceType: PricePaid, Price: "007.5"}, want: 750},
		{name: "paid at cap", draft: Draft{PriceType: PricePaid, Price: "1000000"}, want: MaxPriceCents},
		{name: "paid above cap", draft: Draft{PriceType: PricePaid, Price: "1000000.01"}, want: 0},
		{name: "paid huge", draft: Draft{PriceType: PricePaid, Price: "100000000000000000000"}, want: 0},
		{name: "paid exponent", draft: Draft{PriceType: PricePaid, Price: "1e3"}, want: 0},
		{name: "paid big exponent", draft: Draft{PriceType: PricePaid, Price: "1e30"}, want: 0},
		{name: "paid hex float", draft: Draft{PriceType: PricePaid, Price: "0x1p4"}, want: 0},
		{name: "paid explicit sign", draft: Draft{PriceType: PricePaid, Price: "+5"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.PriceCents())
		})
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()
	assert.Empty(t, d.Steps)
	assert.True(t, d.IsFree())
	assert.Equal(t, DefaultTheme, d.Theme)
	assert.False(t, d.HasBlocks())
}

func TestParsePrincipal(t *testing.T) {
	p, err := ParsePrincipal(" aaaaa-aa ")
	require.NoError(t, err)
	assert.Equal(t, Principal("aaaaa-aa"), p)
	assert.False(t, p.IsAnonymous())

	for _, bad := range []string{"", "AAAAA-aa", "abcdef-aa", "aa--aa", "aa-a1"} {
		_, err := ParsePrincipal(bad)
		assert.ErrorIs(t, err, ErrInvalidPrincipal, bad)
	}

	assert.True(t, AnonymousPrincipal.IsAnonymous())
}

func TestIsLocalID(t *testing.T) {
	assert.True(t, IsLocalID("local-blueprint-1700000000000-abcd1234"))
	assert.False(t, IsLocalID("bp-123"))
	assert.False(t, IsLocalID("blueprint-language-001"))
}
