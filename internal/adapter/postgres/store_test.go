package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS seismic_events")
	assert.Contains(t, schemaSQL, "id           TEXT PRIMARY KEY")
}

func TestInsertIsIdempotent(t *testing.T) {
	// Replay safety rests on the conflict clause; a schema change that drops
	// it should fail loudly here.
	assert.Contains(t, insertEventSQL, "ON CONFLICT (id) DO NOTHING")
	assert.Equal(t, 11, strings.Count(insertEventSQL, "$"), "placeholder count must match column list")
}

func TestPublish_EmptyBatchIsNoop(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.Publish(t.Context(), nil))
}
