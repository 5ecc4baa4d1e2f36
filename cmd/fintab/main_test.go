package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeStatement(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{nil, "2021", "Margin"},
		{"Revenue", "$ 10", "40 %"},
		{"Cost", "$ 4", "20 %"},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunJSONStdout(t *testing.T) {
	out, err := execute(t, writeStatement(t), "--log-level", "error")
	require.NoError(t, err)

	var decoded struct {
		Table struct {
			Columns []string `json:"columns"`
		} `json:"table"`
		Units map[string]string `json:"units"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []string{"row_nm", "2021", "Margin"}, decoded.Table.Columns)
	assert.Equal(t, map[string]string{"2021": "$", "Margin": "%"}, decoded.Units)
}

func TestRunSegmentsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "segments")
	out := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, writeStatement(t), "-o", out, "--group-width", "1", "--segments-dir", dir)
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.FileExists(t, filepath.Join(dir, "segment1_2021.json"))
	assert.FileExists(t, filepath.Join(dir, "segment2.json"))
}

func TestRunXLSX(t *testing.T) {
	input := writeStatement(t)

	_, err := execute(t, input, "--format", "xlsx")
	assert.Error(t, err)

	out := filepath.Join(t.TempDir(), "result.xlsx")
	_, err = execute(t, input, "--format", "xlsx", "-o", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"table", "title_rows", "unlabeled_rows"}, f.GetSheetList())
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	_, err = execute(t, writeStatement(t), "--page", "0")
	assert.Error(t, err)

	cfgPath := filepath.Join(t.TempDir(), "fintab.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: loud\n"), 0644))
	_, err = execute(t, writeStatement(t), "--config", cfgPath)
	assert.Error(t, err)
}
