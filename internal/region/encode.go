// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import (
	"encoding/binary"
	"fmt"
)

// Encode serializes the Region back into region-file bytes, compacting
// as a side effect: every chunk is assigned a fresh sector offset by
// walking the Region in iteration order from sector 2, so payloads are
// packed with no gaps or overlaps regardless of where they sat before.
// Table entries for absent slots and any padding are zero.
func (r *Region) Encode() ([]byte, error) {
	next := uint32(firstDataSector)
	for _, slot := range r.order {
		c := r.slots[slot]
		if c.SectorCount == 0 || len(c.Payload) != int(c.SectorCount)*SectorSize {
			return nil, fmt.Errorf("slot %d: %w", slot, ErrBadPayload)
		}
		c.SectorOffset = next
		next += uint32(c.SectorCount)
	}

	// packed layout, so the last chunk's end is the max extent
	out := make([]byte, HeaderSize+int(next-firstDataSector)*SectorSize)
	for _, slot := range r.order {
		c := r.slots[slot]
		binary.BigEndian.PutUint32(out[slot*entrySize:], c.SectorOffset<<8|uint32(c.SectorCount))
		binary.BigEndian.PutUint32(out[tableSize+slot*entrySize:], c.Timestamp)
		copy(out[int(c.SectorOffset)*SectorSize:], c.Payload)
	}
	return out, nil
}
