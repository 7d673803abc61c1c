package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag values left over from a previous execution.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(os.Stdin)
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)
		rootCmd.SetArgs(nil)
	})
	code = Execute()
	return code, out.String(), errOut.String()
}

func TestCLI(t *testing.T) {
	t.Chdir(t.TempDir())

	valid := "Number of states: 3\nAlphabet size: 1\nAccepting states: 2\n{1} {}\n{} {2}\n{} {}\n"
	missingHeader := "Number of states: 3\nAlphabet size: 1\n{1} {}\n{} {2}\n{} {}\n"
	require.NoError(t, os.WriteFile("bad.txt", []byte(missingHeader), 0o644))
	require.NoError(t, os.WriteFile("good.txt", []byte(valid), 0o644))

	t.Run("Parse Failure Exits Non Zero", func(t *testing.T) {
		code, stdout, stderr := run(t, "", "bad.txt", "--to", "grid", "--from", "auto")
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.True(t, strings.HasPrefix(stderr, "[Error]: "), stderr)
		assert.Contains(t, stderr, "header tag mismatch")
	})

	t.Run("Convert", func(t *testing.T) {
		code, stdout, _ := run(t, "", "good.txt", "--to", "grid", "--from", "auto")
		assert.Equal(t, 0, code)
		assert.Equal(t, "Number of states: 3\nAlphabet size: 1\nAccepting states: 2\n{2}\n{2}\n{}\n", stdout)
	})

	t.Run("Stdin", func(t *testing.T) {
		code, stdout, _ := run(t, valid, "-", "--to", "json", "--from", "grid")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, `"states": 3`)
	})

	t.Run("Wrong Arity", func(t *testing.T) {
		code, stdout, stderr := run(t, "")
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "accepts 1 arg")
	})

	t.Run("Validate", func(t *testing.T) {
		code, stdout, _ := run(t, "", "validate", "good.txt", "--from", "auto")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "valid: 3 states")
	})

	t.Run("Accepts", func(t *testing.T) {
		code, stdout, _ := run(t, "", "accepts", "good.txt", "a", "aa", "--from", "auto")
		assert.Equal(t, 0, code)
		assert.Equal(t, "a: accepted\naa: rejected\n", stdout)
	})

	t.Run("Graph", func(t *testing.T) {
		code, stdout, _ := run(t, "", "graph", "good.txt", "--converted", "--from", "auto")
		assert.Equal(t, 0, code)
		assert.True(t, strings.HasPrefix(stdout, "graph LR\n"))
	})

	t.Run("Version", func(t *testing.T) {
		code, stdout, _ := run(t, "", "version")
		assert.Equal(t, 0, code)
		assert.True(t, strings.HasPrefix(stdout, "enfa version "))
	})

	t.Run("Config File", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(".", "enfa.yaml"), []byte("to: yaml\n"), 0o644))
		code, stdout, _ := run(t, "", "good.txt", "--config", "enfa.yaml", "--from", "auto")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "states: 3")
	})
}
