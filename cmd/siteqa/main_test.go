package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *Main {
	t.Helper()

	m := NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "siteqa.db")
	return m
}

func TestMain_no_command_shows_help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	m := newTestMain(t)

	err := m.Run(context.Background(), nil, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_reset_requires_force(t *testing.T) {
	var stdout, stderr bytes.Buffer
	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"reset"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "--force")
}

func TestMain_reset_with_force_clears_index(t *testing.T) {
	var stdout, stderr bytes.Buffer
	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"reset", "--force"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "index cleared")
}

func TestMain_stats_on_fresh_database(t *testing.T) {
	var stdout, stderr bytes.Buffer
	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"stats"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "chunks:   0")
	assert.Contains(t, stdout.String(), m.DBPath)
}

func TestMain_ask_without_api_key_fails_with_hint(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	m := newTestMain(t)

	err := m.Run(context.Background(), []string{"ask", "what is this?"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
