package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	first, err := validModel().Fingerprint()
	require.NoError(t, err)
	second, err := validModel().Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	base, err := validModel().Fingerprint()
	require.NoError(t, err)

	changed := validModel()
	changed.Resource("posts").Attributes["title"].Nullable = true
	got, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, base, got)

	prefixed := validModel()
	prefixed.Prefix = "/api"
	got, err = prefixed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, base, got)
}
