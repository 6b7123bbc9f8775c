package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSource_MapsNameToVariable(t *testing.T) {
	t.Setenv("COMMERCEHUB_API_KEY", "key-from-env")

	source := NewEnvSource()
	value, err := source.GetSecret(context.Background(), "commercehub/api-key")
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", value)
}

func TestEnvSource_MissingSecret(t *testing.T) {
	source := NewEnvSource()

	_, err := source.GetSecret(context.Background(), "commercehub/does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMMERCEHUB_DOES_NOT_EXIST")
}
