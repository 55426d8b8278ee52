package main

import (
	"bytes"
	"testing"

	"github.com/lightsmap/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "lightsd version dev\n", out.String())
}

func TestServeFailsClosedWithoutSecrets(t *testing.T) {
	for _, key := range []string{"ADMIN_PASSWORD", "JWT_SECRET", "DATABASE_URL", "POSTGRES_URL", "POSTGRES_PRISMA_URL", "POSTGRES_URL_NON_POOLING", "LIGHTS_CONFIG"} {
		t.Setenv(key, "")
	}
	cmd := rootCmd()
	cmd.SetArgs([]string{"serve", "--env-file", t.TempDir() + "/missing.env"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingSetting)
}
