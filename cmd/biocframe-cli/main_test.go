package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/biocframe"
	"github.com/paveg/biocframe/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, biocframe.Configure(biocframe.DefaultConfig())) })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "biocframe "+version.Version)
	assert.Contains(t, out, "Arrow:")

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info.Version)
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo", "--rows", "4", "--join", "outer")
	require.NoError(t, err)
	assert.Contains(t, out, "Merged (outer join):")
	assert.Contains(t, out, "gene_5")
	assert.Contains(t, out, "Relaxed row combine:")
	assert.Contains(t, out, "novel_1")

	_, err = execute(t, "demo", "--join", "cross")
	assert.ErrorIs(t, err, biocframe.ErrType)

	_, err = execute(t, "demo", "--rows", "0")
	assert.Error(t, err)
}

func TestDemoUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biocframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_join: inner\nlog_level: error\n"), 0o600))

	out, err := execute(t, "--config", path, "demo", "--rows", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Merged (inner join):")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "demo")
	assert.Error(t, err)

	_, err = execute(t, "--log-level", "loud", "demo")
	assert.Error(t, err)
}

func TestArrowCommand(t *testing.T) {
	out, err := execute(t, "arrow", "--rows", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Record: 2 rows, 5 columns")
	assert.Contains(t, out, "ranges.chrom")
	assert.Contains(t, out, "__index_level_0__")
	assert.Contains(t, out, "Read back:")
}

func TestSampleFrames(t *testing.T) {
	genes, err := sampleGenes(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"symbol", "length", "ranges"}, genes.ColumnNames())
	assert.Equal(t, "gene_5", genes.RowNames()[4])

	annotations, err := sampleAnnotations(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"gene_1", "gene_3", "gene_5", "gene_6"}, annotations.RowNames())

	_, err = sampleGenes(0)
	assert.Error(t, err)
}
