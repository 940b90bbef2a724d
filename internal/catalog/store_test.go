package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
)

func TestSeededStore_List(t *testing.T) {
	s := NewSeededStore()
	products := s.List()
	require.Len(t, products, 6)
	assert.Equal(t, "Headphone Premium", products[0].Name)
	assert.Equal(t, int64(2_999_900), products[0].Price)

	products[0].Name = "changed"
	assert.Equal(t, "Headphone Premium", s.List()[0].Name)
}

func TestStore_Get(t *testing.T) {
	s := NewSeededStore()

	p, ok := s.Get("5")
	require.True(t, ok)
	assert.Equal(t, "Mouse Gaming", p.Name)

	_, ok = s.Get("99")
	assert.False(t, ok)
}

func TestStore_Categories(t *testing.T) {
	s := NewSeededStore()
	assert.Equal(t,
		[]string{"all", "Electronics", "Wearables", "Audio", "Reading", "Gaming"},
		s.Categories())
}

func TestStore_Related(t *testing.T) {
	s := NewSeededStore()

	related := s.Related("5", 3)
	require.Len(t, related, 1)
	assert.Equal(t, "6", related[0].ID)

	assert.Empty(t, s.Related("1", 3))
	assert.Nil(t, s.Related("missing", 3))
}

func TestNewStore_CopiesInput(t *testing.T) {
	in := []model.Product{{ID: "a", Name: "A"}}
	s := NewStore(in)
	in[0].Name = "B"

	p, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", p.Name)
}
