// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package worldmerge combines two Minecraft world directories at the
// region-file level: region files only present in the source world are
// copied into the target, and files present in both are merged chunk
// by chunk under a configurable conflict rule. The target world is
// mutated in place; the source is never written.
package worldmerge

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/minetools/worldmerge/internal/region"
)

// Dimensions are the per-world namespaces processed, in order: the
// overworld (unnamed), the End and the Nether.
var Dimensions = []string{"", "DIM1", "DIM-1"}

// ConfirmFunc is asked once per dimension, after the copy/merge
// candidates have been reported and before anything is written.
// Returning false skips that dimension entirely.
type ConfirmFunc func(dimension string) bool

// Option configures a Merger.
type Option func(*options)

type options struct {
	logger  *logrus.Logger
	confirm ConfirmFunc
	jobs    int
}

// WithLogger sets the logger used for progress and per-file errors.
// If not provided, no logging output will be produced.
func WithLogger(logger *logrus.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithConfirm sets the per-dimension confirmation callback. The
// default accepts every dimension, which is what non-interactive
// callers want; the CLI installs a stdin prompt here.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(opts *options) {
		opts.confirm = confirm
	}
}

// WithJobs allows up to n file pairs per dimension to be processed
// concurrently. The default of 1 processes files strictly in order.
func WithJobs(n int) Option {
	return func(opts *options) {
		opts.jobs = n
	}
}

// Merger drives the copy/merge sequence for one pair of worlds.
type Merger struct {
	targetRoot string
	sourceRoot string
	rule       region.Rule
	logger     *logrus.Logger
	confirm    ConfirmFunc
	jobs       int
}

// NewMerger prepares a merge of sourceRoot's region files into
// targetRoot. Nothing is touched until Run.
func NewMerger(targetRoot, sourceRoot string, rule region.Rule, opts ...Option) (*Merger, error) {
	options := options{
		confirm: func(string) bool { return true },
		jobs:    1,
	}
	options.logger = logrus.New()
	options.logger.SetOutput(io.Discard)
	for _, opt := range opts {
		opt(&options)
	}
	if options.jobs < 1 {
		return nil, fmt.Errorf("jobs must be >= 1 (got %d)", options.jobs)
	}

	targetRoot, err := filepath.Abs(targetRoot)
	if err != nil {
		return nil, errors.Wrap(err, "filepath.Abs")
	}
	sourceRoot, err = filepath.Abs(sourceRoot)
	if err != nil {
		return nil, errors.Wrap(err, "filepath.Abs")
	}

	return &Merger{
		targetRoot: targetRoot,
		sourceRoot: sourceRoot,
		rule:       rule,
		logger:     options.logger,
		confirm:    options.confirm,
		jobs:       options.jobs,
	}, nil
}

// Run processes every dimension in order. Per-file decode and I/O
// failures are logged and skipped; they never abort the run.
func (m *Merger) Run() error {
	for _, dim := range Dimensions {
		m.mergeDimension(dim)
	}
	return nil
}

func (m *Merger) mergeDimension(dim string) {
	targetDir := filepath.Join(m.targetRoot, dim, regionDirName)
	sourceDir := filepath.Join(m.sourceRoot, dim, regionDirName)

	pairs := pairFiles(listRegionFiles(targetDir), listRegionFiles(sourceDir), targetDir)
	if len(pairs.copies) == 0 && len(pairs.merges) == 0 {
		m.logger.Debugf("nothing to do in %s", filepath.Join(dim, regionDirName))
		return
	}

	m.report(dim, pairs)
	if !m.confirm(dim) {
		m.logger.Infof("skipping %s", filepath.Join(dim, regionDirName))
		return
	}

	m.checkFreeSpace(pairs)

	var g errgroup.Group
	g.SetLimit(m.jobs)
	for _, p := range pairs.copies {
		p := p
		g.Go(func() error {
			if err := copyFile(p.src, p.dst); err != nil {
				m.logger.WithError(err).Errorf("copying %s to %s", p.src, p.dst)
			}
			return nil
		})
	}
	for _, p := range pairs.merges {
		p := p
		g.Go(func() error {
			if err := m.mergeFiles(p.base, p.incoming); err != nil {
				m.logger.WithError(err).Errorf("merging %s into %s", p.incoming, p.base)
			}
			return nil
		})
	}
	// workers only ever return nil; failures are per-file, not fatal
	_ = g.Wait()
}

func (m *Merger) report(dim string, pairs filePairs) {
	dimDir := filepath.Join(dim, regionDirName)
	m.logger.Infof("region files in %s to copy: %d", dimDir, len(pairs.copies))
	for _, p := range pairs.copies {
		m.logger.Infof("\tcopy: %s", p.src)
	}
	m.logger.Infof("region files in %s to merge: %d", dimDir, len(pairs.merges))
	for _, p := range pairs.merges {
		m.logger.Infof("\tmerge: %s", p.base)
	}
}

// mergeFiles decodes both files, applies incoming on top of base and
// writes the re-encoded result back over basePath.
func (m *Merger) mergeFiles(basePath, incomingPath string) error {
	base, err := readRegion(basePath)
	if err != nil {
		return err
	}
	incoming, err := readRegion(incomingPath)
	if err != nil {
		return err
	}

	base.Merge(incoming, m.rule)

	out, err := base.Encode()
	if err != nil {
		return errors.Wrapf(err, "encode %s", basePath)
	}
	if err := writeFileAtomic(basePath, out); err != nil {
		return err
	}
	m.logger.Debugf("merged %d chunks from %s into %s", incoming.Len(), incomingPath, basePath)
	return nil
}

type copyPair struct {
	src string
	dst string
}

type mergePair struct {
	base     string
	incoming string
}

type filePairs struct {
	copies []copyPair
	merges []mergePair
}

// pairFiles classifies the source world's region files: names missing
// from the target are copy candidates, names present in both need a
// chunk merge. Files only in the target are left alone.
func pairFiles(targetFiles, sourceFiles map[string]string, targetDir string) filePairs {
	names := make([]string, 0, len(sourceFiles))
	for name := range sourceFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs filePairs
	for _, name := range names {
		if basePath, ok := targetFiles[name]; ok {
			pairs.merges = append(pairs.merges, mergePair{base: basePath, incoming: sourceFiles[name]})
		} else {
			pairs.copies = append(pairs.copies, copyPair{src: sourceFiles[name], dst: filepath.Join(targetDir, name)})
		}
	}
	return pairs
}
