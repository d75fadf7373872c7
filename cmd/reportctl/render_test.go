package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRender(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRenderCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRenderPDF(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"data":[{"code":"P1","name":"Widget","category":"Tools","quantitySold":5,"revenue":50000}]}`), 0o644))
	out := filepath.Join(dir, "out.pdf")

	stdout, err := runRender(t, "--type", "products", "--payload", payload, "--start", "2026-10-01", "--end", "2026-10-31", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderXLSX(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "sales.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"data":[]}`), 0o644))
	out := filepath.Join(dir, "out.xlsx")

	_, err := runRender(t, "--type", "sales", "--payload", payload, "--start", "2026-10-01", "--end", "2026-10-31", "--format", "xlsx", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "p.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"data":[]}`), 0o644))

	_, err := runRender(t, "--type", "sales", "--payload", payload, "--start", "2026-10-01", "--end", "2026-10-31", "--format", "docx")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = runRender(t, "--type", "sales", "--payload", filepath.Join(dir, "missing.json"), "--start", "2026-10-01", "--end", "2026-10-31")
	assert.ErrorContains(t, err, "failed to read payload")

	_, err = runRender(t, "--type", "sales", "--payload", payload, "--start", "2026-10-31", "--end", "2026-10-01")
	assert.Error(t, err)

	_, err = runRender(t, "--payload", payload)
	assert.Error(t, err)
}
