package drivers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/execsim/database"
)

func TestConnect(t *testing.T) {
	_, err := Connect(nil)
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)

	_, err = Connect(&database.Config{Driver: "oracle"})
	assert.ErrorIs(t, err, database.ErrUnsupportedDriver)

	_, err = Connect(&database.Config{Driver: database.DBSQLite3})
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)

	inst, err := Connect(&database.Config{
		Enabled:  true,
		Driver:   database.DBSQLite,
		Database: filepath.Join(t.TempDir(), "execsim.db"),
	})
	require.NoError(t, err)
	assert.True(t, inst.IsConnected())
	assert.NoError(t, inst.CloseConnection())
}
