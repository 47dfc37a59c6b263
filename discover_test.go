// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package worldmerge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestListRegionFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "r.0.0.mca"), []byte{1})
	writeFile(t, filepath.Join(dir, "r.0.1.mca"), nil) // zero-length, excluded
	writeFile(t, filepath.Join(dir, "level.dat"), []byte{1})
	writeFile(t, filepath.Join(dir, "nested", "r.1.0.mca"), []byte{1})

	files := listRegionFiles(dir)
	assert.Equal(t, map[string]string{
		"r.0.0.mca": filepath.Join(dir, "r.0.0.mca"),
		"r.1.0.mca": filepath.Join(dir, "nested", "r.1.0.mca"),
	}, files)
}

func TestListRegionFiles_MissingDir(t *testing.T) {
	files := listRegionFiles(filepath.Join(t.TempDir(), "no-such-dimension", "region"))
	assert.Empty(t, files)
}

func TestPairFiles(t *testing.T) {
	targetDir := filepath.Join("target", "region")
	target := map[string]string{
		"r.0.0.mca": filepath.Join(targetDir, "r.0.0.mca"),
		"r.9.9.mca": filepath.Join(targetDir, "r.9.9.mca"), // only in target: untouched
	}
	source := map[string]string{
		"r.0.0.mca": filepath.Join("source", "region", "r.0.0.mca"),
		"r.0.1.mca": filepath.Join("source", "region", "r.0.1.mca"),
		"r.0.2.mca": filepath.Join("source", "region", "r.0.2.mca"),
	}

	pairs := pairFiles(target, source, targetDir)

	assert.Equal(t, []copyPair{
		{src: filepath.Join("source", "region", "r.0.1.mca"), dst: filepath.Join(targetDir, "r.0.1.mca")},
		{src: filepath.Join("source", "region", "r.0.2.mca"), dst: filepath.Join(targetDir, "r.0.2.mca")},
	}, pairs.copies)
	assert.Equal(t, []mergePair{
		{base: filepath.Join(targetDir, "r.0.0.mca"), incoming: filepath.Join("source", "region", "r.0.0.mca")},
	}, pairs.merges)
}

func TestPairFiles_Empty(t *testing.T) {
	pairs := pairFiles(map[string]string{"a.mca": "x"}, nil, "target")
	assert.Empty(t, pairs.copies)
	assert.Empty(t, pairs.merges)
}
