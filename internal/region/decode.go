// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a raw region file into a Region. Slots are inserted in
// ascending index order, which fixes the Region's initial iteration
// order. Chunk payloads alias buf rather than copying it.
func Decode(buf []byte) (*Region, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrTruncated, len(buf), HeaderSize)
	}

	locations := buf[:tableSize]
	timestamps := buf[tableSize:HeaderSize]
	data := buf[HeaderSize:]

	r := New()
	for slot := 0; slot < SlotCount; slot++ {
		entry := binary.BigEndian.Uint32(locations[slot*entrySize:])
		count := uint8(entry)
		if count == 0 {
			// slot absent
			continue
		}
		off := entry >> 8
		if off < firstDataSector {
			return nil, fmt.Errorf("%w: slot %d placed in reserved sector %d", ErrCorrupt, slot, off)
		}

		start := (int64(off) - firstDataSector) * SectorSize
		end := start + int64(count)*SectorSize
		if end > int64(len(data)) {
			return nil, fmt.Errorf("%w: slot %d spans [%d, %d) beyond %d payload bytes",
				ErrCorrupt, slot, start, end, len(data))
		}

		r.put(slot, &Chunk{
			Timestamp:    binary.BigEndian.Uint32(timestamps[slot*entrySize:]),
			SectorOffset: off,
			SectorCount:  count,
			Payload:      data[start:end:end],
		})
	}
	return r, nil
}
