package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thrasher-corp/execsim/database"
)

func TestDSN(t *testing.T) {
	t.Parallel()
	cfg := &database.Config{
		Host:     "localhost",
		Port:     5432,
		Username: "execsim",
		Password: "pw",
		Database: "execsim",
	}
	assert.Equal(t, "host=localhost port=5432 user=execsim password=pw dbname=execsim sslmode=disable", DSN(cfg))
	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestConnectNoDatabase(t *testing.T) {
	t.Parallel()
	_, err := Connect(nil)
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)
	_, err = Connect(&database.Config{Host: "localhost"})
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)
}
