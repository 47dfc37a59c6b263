// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package worldmerge

import (
	"os"
	"path/filepath"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/minetools/worldmerge/internal/region"
)

func readRegion(path string) (*region.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	r, err := region.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return r, nil
}

// copyFile duplicates src byte-for-byte to dst, then re-reads dst and
// compares content hashes to catch a torn or short write before the
// source world is considered merged.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", src)
	}
	if err := writeFileAtomic(dst, data); err != nil {
		return err
	}

	written, err := os.ReadFile(dst)
	if err != nil {
		return errors.Wrapf(err, "read back %s", dst)
	}
	if farm.Hash64(written) != farm.Hash64(data) {
		return errors.Errorf("copy verification failed for %s", dst)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in path's directory and
// renames it into place, so a crash mid-write can't leave a partially
// written region file at path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}
	f, err := os.CreateTemp(dir, "worldmerge.*.mca")
	if err != nil {
		return errors.Wrap(err, "CreateTemp")
	}
	defer func() {
		if f != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "write %s", f.Name())
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "sync")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return errors.Wrap(err, "rename")
	}
	f = nil
	return nil
}

// checkFreeSpace warns when the target filesystem doesn't have room
// for the bytes about to land in it. Only a warning: statfs failures
// and an over-commit both leave the decision to the per-file writes,
// which fail cleanly on a full disk.
func (m *Merger) checkFreeSpace(pairs filePairs) {
	var need uint64
	for _, p := range pairs.copies {
		if info, err := os.Stat(p.src); err == nil {
			need += uint64(info.Size())
		}
	}
	for _, p := range pairs.merges {
		// a merged file can grow to at most base + incoming payloads
		for _, path := range []string{p.base, p.incoming} {
			if info, err := os.Stat(path); err == nil {
				need += uint64(info.Size())
			}
		}
	}

	var st unix.Statfs_t
	if err := unix.Statfs(m.targetRoot, &st); err != nil {
		m.logger.WithError(err).Debugf("statfs %s", m.targetRoot)
		return
	}
	free := st.Bavail * uint64(st.Bsize)
	if free < need {
		m.logger.Warnf("target filesystem has %d bytes free, merge may need up to %d", free, need)
	}
}
