package seed

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T) *YAMLProvider {
	t.Helper()
	p, err := Default()
	require.NoError(t, err)
	return p
}

func TestDefault_Catalog(t *testing.T) {
	p := mustDefault(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	entries := p.Catalog(now)
	require.Len(t, entries, 6)

	first := entries[0]
	assert.Equal(t, "blueprint-language-001", first.ID)
	assert.True(t, first.IsFree)
	assert.Equal(t, models.Principal("aaaaa-aa"), first.Creator)
	assert.Equal(t, now.Add(-30*24*time.Hour), first.CreatedAt)
	assert.Equal(t, "#34C759", first.Theme.Primary)

	startup := entries[1]
	assert.Equal(t, uint64(2999), startup.Price)
	assert.False(t, startup.IsFree)
	assert.Equal(t, now.Add(-15*24*time.Hour), startup.CreatedAt)

	for _, e := range entries {
		assert.True(t, p.IsSeed(e.ID), e.ID)
	}
	assert.False(t, p.IsSeed("bp-123"))
	assert.False(t, p.IsSeed("blueprint-unknown"))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	p := mustDefault(t)
	a := p.Catalog(time.Now())
	a[0].Tags[0] = "changed"

	b := p.Catalog(time.Now())
	assert.Equal(t, "spanish", b[0].Tags[0])
}

func TestNewYAMLProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml list", "id: x"},
		{"missing id", "- description: d\n  creator: aaaaa-aa"},
		{"duplicate", "- id: a\n  creator: aaaaa-aa\n- id: a\n  creator: aaaaa-aa"},
		{"bad creator", "- id: a\n  creator: NOPE!"},
		{"bad age", "- id: a\n  creator: aaaaa-aa\n  age: soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLProvider([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestSessionOverlay(t *testing.T) {
	o := NewSessionOverlay()

	assert.True(t, o.ToggleLike("blueprint-coding-001"))
	assert.True(t, o.Liked("blueprint-coding-001"))
	assert.False(t, o.ToggleLike("blueprint-coding-001"))
	assert.False(t, o.Liked("blueprint-coding-001"))

	require.NoError(t, o.Purchase("blueprint-startup-001"))
	assert.True(t, o.Purchased("blueprint-startup-001"))
	require.ErrorIs(t, o.Purchase("blueprint-startup-001"), ErrAlreadyPurchased)
	assert.False(t, o.Purchased("blueprint-marathon-001"))
}
