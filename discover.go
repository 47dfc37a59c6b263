// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package worldmerge

import (
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	regionDirName = "region"
	regionSuffix  = ".mca"
)

// listRegionFiles walks dir and returns its region files keyed by base
// name. Zero-length files are excluded: the game creates empty .mca
// files it never got around to populating, and an empty file has no
// header to decode. A missing or unreadable dir yields an empty map --
// a world without that dimension is normal, not an error.
func listRegionFiles(dir string) map[string]string {
	files := make(map[string]string)
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), regionSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}
		files[d.Name()] = path
		return nil
	})
	return files
}
