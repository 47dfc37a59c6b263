// Copyright 2024 The worldmerge Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPut(t *testing.T, r *Region, slot int, ts uint32, sectors int, fill byte) *Chunk {
	t.Helper()
	c, err := NewChunk(ts, payload(sectors, fill))
	require.NoError(t, err)
	require.NoError(t, r.Put(slot, c))
	return c
}

func TestMerge_DisjointSlots(t *testing.T) {
	for _, rule := range []Rule{NewestWins, Always, Never} {
		base := New()
		mustPut(t, base, 1, 10, 1, 0x01)
		incoming := New()
		mustPut(t, incoming, 2, 20, 1, 0x02)

		base.Merge(incoming, rule)

		require.Equal(t, []int{1, 2}, base.Slots(), "rule %s", rule)
		c, ok := base.Get(1)
		require.True(t, ok)
		assert.Equal(t, uint32(10), c.Timestamp)
		assert.Equal(t, payload(1, 0x01), c.Payload)
		c, ok = base.Get(2)
		require.True(t, ok)
		assert.Equal(t, uint32(20), c.Timestamp)
		assert.Equal(t, payload(1, 0x02), c.Payload)
	}
}

func TestMerge_NewestWinsIsStrict(t *testing.T) {
	tests := []struct {
		name         string
		baseTS       uint32
		incomingTS   uint32
		wantIncoming bool
	}{
		{"incoming newer", 100, 200, true},
		{"tie keeps base", 100, 100, false},
		{"incoming older", 200, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := New()
			mustPut(t, base, 5, tt.baseTS, 1, 0x0b)
			incoming := New()
			mustPut(t, incoming, 5, tt.incomingTS, 2, 0x0c)

			base.Merge(incoming, NewestWins)

			c, ok := base.Get(5)
			require.True(t, ok)
			if tt.wantIncoming {
				assert.Equal(t, tt.incomingTS, c.Timestamp)
				assert.Equal(t, payload(2, 0x0c), c.Payload)
			} else {
				assert.Equal(t, tt.baseTS, c.Timestamp)
				assert.Equal(t, payload(1, 0x0b), c.Payload)
			}
		})
	}
}

func TestMerge_AlwaysIsIdempotent(t *testing.T) {
	build := func() (*Region, *Region) {
		base := New()
		mustPut(t, base, 5, 100, 1, 0x01)
		mustPut(t, base, 6, 300, 1, 0x02)
		incoming := New()
		mustPut(t, incoming, 5, 1, 2, 0x03)
		mustPut(t, incoming, 9, 50, 1, 0x04)
		return base, incoming
	}

	once, incoming := build()
	once.Merge(incoming, Always)

	twice, incoming2 := build()
	twice.Merge(incoming2, Always)
	twice.Merge(incoming2, Always)

	a, err := once.Encode()
	require.NoError(t, err)
	b, err := twice.Encode()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMerge_NeverPreservesOverlaps(t *testing.T) {
	base := New()
	mustPut(t, base, 5, 1, 1, 0x0a)
	incoming := New()
	mustPut(t, incoming, 5, 999, 2, 0x0b)
	mustPut(t, incoming, 9, 50, 1, 0x0c)

	base.Merge(incoming, Never)

	c, ok := base.Get(5)
	require.True(t, ok)
	assert.Equal(t, uint32(1), c.Timestamp)
	assert.Equal(t, payload(1, 0x0a), c.Payload)

	// unique incoming slots are added regardless of the rule
	c, ok = base.Get(9)
	require.True(t, ok)
	assert.Equal(t, payload(1, 0x0c), c.Payload)
}

func TestMerge_OrderIsAppendOnly(t *testing.T) {
	base := New()
	mustPut(t, base, 100, 1, 1, 0x01)
	mustPut(t, base, 5, 1, 1, 0x02)

	// incoming presents its slots in its own order: 9 before 5
	incoming := New()
	mustPut(t, incoming, 9, 2, 1, 0x03)
	mustPut(t, incoming, 5, 2, 1, 0x04)
	mustPut(t, incoming, 700, 2, 1, 0x05)

	base.Merge(incoming, Always)

	// slot 5 is replaced in place; 9 and 700 append in incoming's order
	assert.Equal(t, []int{100, 5, 9, 700}, base.Slots())
}

func TestMerge_IncomingIsUntouched(t *testing.T) {
	b := newRaw(2)
	b.setEntry(5, 2, 1, 10)
	b.setEntry(9, 3, 1, 20)
	b.setPayload(2, payload(1, 0x01))
	b.setPayload(3, payload(1, 0x02))
	incoming, err := Decode(b.buf)
	require.NoError(t, err)

	base := New()
	base.Merge(incoming, Always)

	// encoding base renumbers its copies, not incoming's chunks
	_, err = base.Encode()
	require.NoError(t, err)

	c, ok := incoming.Get(9)
	require.True(t, ok)
	assert.Equal(t, uint32(3), c.SectorOffset)
	assert.Equal(t, 2, incoming.Len())
}
