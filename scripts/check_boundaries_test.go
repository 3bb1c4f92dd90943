package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRespectsLayerBoundaries(t *testing.T) {
	assert.Empty(t, collectViolations(filepath.Join("..", "contexts")))
}

func TestDomainImportingAdaptersIsReported(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "area", "service", "domain", "entities")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	source := `package entities

import (
	"strings"

	"reviewdesk/contexts/area/service/adapters/memory"
	"reviewdesk/contexts/area/other/domain/entities"
)

var _ = strings.TrimSpace
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(source), 0o644))

	violations := collectViolations(root)

	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	assert.Contains(t, rules, "domain must not import adapters")
	assert.Contains(t, rules, "cross-module imports are forbidden")
	assert.Contains(t, rules, "domain import is outside explicit allowlist")
	for _, v := range violations {
		assert.Equal(t, "contexts/area/service/domain/entities/bad.go", v.File)
	}
}

func TestApplicationMayUseAllowlistedLibraries(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "area", "service", "application", "memo")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	source := `package memo

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"reviewdesk/internal/shared/events"
)
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memo.go"), []byte(source), 0o644))

	assert.Empty(t, collectViolations(root))
}
