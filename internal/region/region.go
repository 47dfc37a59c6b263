// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import (
	"errors"
	"fmt"
)

const (
	// SectorSize is the fixed allocation unit of a region file.
	SectorSize = 4096

	// SlotCount is the number of addressable chunk slots per region
	// (a 32x32 grid, though only the flat index matters here).
	SlotCount = 1024

	// MaxSectors is the largest chunk the single-byte sector count
	// field can describe.
	MaxSectors = 255

	// HeaderSize covers the location and timestamp tables.
	HeaderSize = 2 * tableSize

	entrySize = 4
	tableSize = SlotCount * entrySize

	// the header occupies sectors 0 and 1, so payloads start at 2
	firstDataSector = 2
)

var (
	ErrTruncated   = errors.New("buffer too short for region header")
	ErrCorrupt     = errors.New("region header inconsistent with buffer")
	ErrBadSlot     = errors.New("slot index out of range")
	ErrBadPayload  = errors.New("payload length must be sectorCount * 4096")
	ErrChunkTooBig = errors.New("chunk exceeds 255 sectors")
)

// Chunk is one slot's stored payload plus its allocation metadata.
// Payload bytes are opaque: real saves put length-prefixed compressed
// NBT in there, but nothing in this package depends on that.
type Chunk struct {
	Timestamp    uint32
	SectorOffset uint32
	SectorCount  uint8
	Payload      []byte
}

// NewChunk builds a Chunk from a sector-aligned payload, deriving the
// sector count. The offset is left zero; Encode assigns real offsets.
func NewChunk(timestamp uint32, payload []byte) (*Chunk, error) {
	if len(payload) == 0 || len(payload)%SectorSize != 0 {
		return nil, fmt.Errorf("%w (got %d bytes)", ErrBadPayload, len(payload))
	}
	sectors := len(payload) / SectorSize
	if sectors > MaxSectors {
		return nil, fmt.Errorf("%w (%d sectors)", ErrChunkTooBig, sectors)
	}
	return &Chunk{
		Timestamp:   timestamp,
		SectorCount: uint8(sectors),
		Payload:     payload,
	}, nil
}

// Region is an insertion-ordered mapping from slot index to Chunk.
// Order matters: Encode lays payloads out in iteration order, so two
// Regions with the same chunks but different insertion histories
// produce different (equally valid) files.
type Region struct {
	slots map[int]*Chunk
	order []int
}

func New() *Region {
	return &Region{slots: make(map[int]*Chunk)}
}

func (r *Region) Len() int {
	return len(r.order)
}

func (r *Region) Get(slot int) (*Chunk, bool) {
	c, ok := r.slots[slot]
	return c, ok
}

// Slots returns the slot indices in iteration order.
func (r *Region) Slots() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// Put inserts or replaces the chunk at slot. A new slot is appended to
// the iteration order; replacing an existing slot keeps its position.
func (r *Region) Put(slot int, c *Chunk) error {
	if slot < 0 || slot >= SlotCount {
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	if c.SectorCount == 0 || len(c.Payload) != int(c.SectorCount)*SectorSize {
		return fmt.Errorf("slot %d: %w", slot, ErrBadPayload)
	}
	r.put(slot, c)
	return nil
}

func (r *Region) put(slot int, c *Chunk) {
	if _, ok := r.slots[slot]; !ok {
		r.order = append(r.order, slot)
	}
	r.slots[slot] = c
}
