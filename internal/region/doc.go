// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package region decodes, merges and re-encodes Minecraft region files
// (the Anvil ".mca" container format).
//
// A region file bundles up to 1024 chunks in a sector-allocated layout.
// Sectors are fixed 4096-byte units, and the first two sectors hold a
// pair of index-aligned header tables:
//
//	┌──────────────────────┐ 0
//	│ location table       │   1024 × 4-byte entries:
//	│                      │   3-byte big-endian sector offset,
//	│                      │   1-byte sector count (0 = slot absent)
//	├──────────────────────┤ 4096
//	│ timestamp table      │   1024 × 4-byte big-endian timestamps
//	├──────────────────────┤ 8192
//	│ chunk payloads       │   each starting at offset*4096 and
//	│                      │   spanning count*4096 bytes
//	│                      │
//	└──────────────────────┘
//
// Sector offsets are counted from the start of the file, so offsets 0
// and 1 are reserved for the header and never valid for a payload.
// Payload bytes (compressed NBT in real saves) are carried opaquely --
// nothing in this package inspects or decompresses them.
//
// The single-byte sector count caps a chunk at 255 sectors (1,044,480
// bytes); the format has no overflow mechanism and neither does this
// package.
package region
