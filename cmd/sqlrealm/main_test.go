package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sqlrealm/pkg/logging"
	"github.com/mmcdole/sqlrealm/pkg/password"
)

func writeConfig(t *testing.T, driver string, realm map[string]string) string {
	t.Helper()

	props := map[string]string{
		"user-table":           "users",
		"user-name-column":     "username",
		"user-password-column": "password",
		"group-table":          "user_groups",
		"group-name-column":    "group_name",
	}
	for k, v := range realm {
		props[k] = v
	}

	data, err := json.Marshal(map[string]interface{}{
		"driver":     driver,
		"datasource": "unused",
		"log_level":  "error",
		"realm":      props,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// runCommand executes the root command with fresh flag state
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	oldApp, oldAccess := logging.App, logging.Access
	t.Cleanup(func() { logging.App, logging.Access = oldApp, oldAccess })

	cfgFile, showVersion, passwordStdin = "", false, false

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQueriesCommand(t *testing.T) {
	t.Run("question placeholders", func(t *testing.T) {
		path := writeConfig(t, "mysql", nil)
		out, err := runCommand(t, "", "queries", "--config", path)
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT password FROM users WHERE username = ?\n"+
				"SELECT group_name FROM user_groups WHERE username = ?\n",
			out)
	})

	t.Run("postgres placeholders and join column", func(t *testing.T) {
		path := writeConfig(t, "postgres", map[string]string{"group-table-user-name-column": "member"})
		out, err := runCommand(t, "", "queries", "--config", path)
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT password FROM users WHERE username = $1\n"+
				"SELECT group_name FROM user_groups WHERE member = $1\n",
			out)
	})

	t.Run("invalid properties", func(t *testing.T) {
		path := writeConfig(t, "mysql", map[string]string{"user-table": "users; DROP TABLE users"})
		_, err := runCommand(t, "", "queries", "--config", path)
		assert.Error(t, err)
	})
}

func TestHashCommand(t *testing.T) {
	t.Run("sha-256", func(t *testing.T) {
		path := writeConfig(t, "mysql", map[string]string{"digest-algorithm": "SHA-256"})
		out, err := runCommand(t, "mepasswd\n", "hash", "--config", path, "--password-stdin")
		require.NoError(t, err)
		assert.Equal(t, "A85B7600AFB37AD9D8BD6D0F3903C33DCA54ADAE99CCAB1E8870F1D985D5B0D3\n", out)
	})

	t.Run("bcrypt output verifies", func(t *testing.T) {
		path := writeConfig(t, "mysql", map[string]string{"digest-algorithm": "bcrypt", "bcrypt-log-rounds": "4"})
		out, err := runCommand(t, "mepasswd\n", "hash", "--config", path, "--password-stdin")
		require.NoError(t, err)

		b, err := password.NewBcrypt("", password.MinLogRounds)
		require.NoError(t, err)
		ok, err := b.Verify("mepasswd", strings.TrimSpace(out))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown digest", func(t *testing.T) {
		path := writeConfig(t, "mysql", map[string]string{"digest-algorithm": "sha-257"})
		_, err := runCommand(t, "mepasswd\n", "hash", "--config", path, "--password-stdin")
		assert.ErrorIs(t, err, password.ErrUnsupportedAlgorithm)
	})
}

func TestDatabaseCommands_OpenFailure(t *testing.T) {
	path := writeConfig(t, "nosuchdriver", nil)

	_, err := runCommand(t, "mepasswd\n", "authenticate", "ME", "--config", path, "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")

	_, err = runCommand(t, "", "groups", "ME", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRootCommand(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		out, err := runCommand(t, "", "--version")
		require.NoError(t, err)
		assert.Equal(t, "sqlrealm dev\n", out)
	})

	t.Run("config is required", func(t *testing.T) {
		_, err := runCommand(t, "", "queries")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--config")
	})

	t.Run("authenticate needs a username", func(t *testing.T) {
		path := writeConfig(t, "mysql", nil)
		_, err := runCommand(t, "", "authenticate", "--config", path)
		assert.Error(t, err)
	})
}
