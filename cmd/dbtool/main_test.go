package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestReset_RequiresForce(t *testing.T) {
	var out bytes.Buffer
	app := newApp(&out)
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.RunContext(context.Background(), []string{"dbtool", "reset"})
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestWithMaintenanceConn_RejectsMaintenanceTarget(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/postgres?sslmode=disable")
	cfg, err := loadConfig()
	require.NoError(t, err)

	err = withMaintenanceConn(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing")
}

func TestCommands(t *testing.T) {
	app := newApp(&bytes.Buffer{})
	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"setup", "migrate", "reset"}, names)
}
