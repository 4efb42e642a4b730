package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	dir := t.TempDir()

	release, err := Acquire(dir)
	require.NoError(t, err)

	_, err = Acquire(dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, release())

	again, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, again())
}
