package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semonto/export"
)

func TestFormatRegistry(t *testing.T) {
	assert.Equal(t, []string{"json", "ntriples", "obo", "turtle"}, export.FormatNames())

	for _, name := range export.FormatNames() {
		f, err := export.ParseFormat(name)
		require.NoError(t, err)
		info, ok := export.GetFormatInfo(f)
		require.True(t, ok)
		assert.NotEmpty(t, info.MIMEType)

		back, ok := export.FormatFromExtension(info.Extension)
		require.True(t, ok)
		assert.Equal(t, f, back)
	}

	f, err := export.ParseFormat("Turtle")
	require.NoError(t, err)
	assert.Equal(t, export.FormatTurtle, f)

	_, err = export.ParseFormat("owl")
	assert.Error(t, err)

	_, ok := export.FormatFromExtension(".owl")
	assert.False(t, ok)
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{"canonical", "full"}, export.ProfileNames())

	p, err := export.ParseProfile("full")
	require.NoError(t, err)
	assert.True(t, export.GetProfileConfig(p).AllRelations)

	_, err = export.ParseProfile("minimal")
	assert.Error(t, err)

	assert.Equal(t, export.ProfileCanonical, export.GetProfileConfig("minimal").Name,
		"unknown profiles fall back to canonical")
}
