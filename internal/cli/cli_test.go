package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/casepairs/internal/config"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, key := range []string{
		config.EnvConfigFile, config.EnvDatasetRoot, config.EnvOutputName,
		config.EnvJudgementDir, config.EnvSummaryDir, config.EnvExtension,
		config.EnvLogFile, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
	// Log output is not under test.
	t.Setenv(config.EnvLogLevel, "ERROR")

	// Flag variables are package globals and outlive a single Execute.
	verbose, configFile, logFile = false, "", ""
	buildOutput = ""
	buildLayout = layoutFlags{}
	scanLayout = layoutFlags{}

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/judgement/x.txt": "case one",
		"a/summary/x.txt":   "decision one",
		"a/judgement/y.txt": "   ",
		"a/summary/y.txt":   "blank judgement",
	})
	return root
}

func TestBuildCommand(t *testing.T) {
	root := sampleTree(t)

	stdout, err := run(t, "build", root)
	require.NoError(t, err)

	outPath := filepath.Join(root, "judgement_summary.csv")
	assert.Contains(t, stdout, "Initial rows: 2\n")
	assert.Contains(t, stdout, "Rows after cleaning: 1\n")
	assert.Contains(t, stdout, "Saved cleaned dataset to: "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "\"judgement\",\"summary\"\n\"case one\",\"decision one\"\n", string(data))
}

func TestBuildCommand_OutputFlag(t *testing.T) {
	root := sampleTree(t)

	_, err := run(t, "build", root, "--output", "pairs.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "pairs.csv"))
	assert.NoError(t, err)
}

func TestBuildCommand_RootFromConfigFile(t *testing.T) {
	root := sampleTree(t)

	cfgPath := filepath.Join(t.TempDir(), "casepairs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dataset_root: "+root+"\n"), 0o644))

	stdout, err := run(t, "build", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rows after cleaning: 1")
}

func TestBuildCommand_Verbose(t *testing.T) {
	root := sampleTree(t)

	stdout, err := run(t, "build", root, "-v", "--log-file", filepath.Join(t.TempDir(), "run.log"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Files matched:       2")
	assert.Contains(t, stdout, "Dropped (blank):     1")
}

func TestBuildCommand_NoRoot(t *testing.T) {
	_, err := run(t, "build")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNoDatasetRoot)
}

func TestBuildCommand_MissingRoot(t *testing.T) {
	_, err := run(t, "build", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset root not found")
}

func TestBuildCommand_InvalidOutput(t *testing.T) {
	root := sampleTree(t)

	_, err := run(t, "build", root, "-o", "sub/out.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output name")
}

func TestScanCommand(t *testing.T) {
	root := sampleTree(t)

	stdout, err := run(t, "scan", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Found 2 document pairs")
	assert.Contains(t, stdout, filepath.Join(root, "a", "judgement", "x.txt"))
	assert.Contains(t, stdout, filepath.Join(root, "a", "summary", "x.txt"))
	assert.Contains(t, stdout, "Rows after cleaning: 1")
	assert.Contains(t, stdout, "Dry run")

	_, err = os.Stat(filepath.Join(root, "judgement_summary.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanCommand_Empty(t *testing.T) {
	stdout, err := run(t, "scan", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No document pairs found.")
}

func TestScanCommand_CustomLayout(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"rulings/1.md": "ruling",
		"digests/1.md": "digest",
	})

	stdout, err := run(t, "scan", root, "--judgement-dir", "rulings", "--summary-dir", "digests", "--ext", ".md")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 1 document pairs")
}

func TestThemeFor_PlainWhenNotTerminal(t *testing.T) {
	theme := themeFor(&bytes.Buffer{})
	assert.Equal(t, "done", theme.success("done"))
	assert.Equal(t, "hint", theme.hint("hint"))
}
