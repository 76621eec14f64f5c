package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_RoundTrip(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	id, err := s.Store("logo.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	data, err := s.Open(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestDiskStore_DefaultsExtension(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	id, err := s.Store("logo", []byte{1})
	require.NoError(t, err)
	assert.Contains(t, id, ".png")
}

func TestDiskStore_RejectsPathEscapingIDs(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Open("../secrets.txt")

	assert.Error(t, err)
}
