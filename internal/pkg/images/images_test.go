package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FiltersBlanks(t *testing.T) {
	got, err := Normalize([]string{"", "  ", "https://cdn.example/a.png", "", "https://cdn.example/b.png"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example/a.png", "https://cdn.example/b.png"}, got)
}

func TestNormalize_CapAfterFiltering(t *testing.T) {
	in := []string{"", "1", "2", "3", "4", "5", ""}
	got, err := Normalize(in)
	assert.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = Normalize([]string{"1", "2", "3", "4", "5", "6"})
	assert.ErrorIs(t, err, ErrTooMany)
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
