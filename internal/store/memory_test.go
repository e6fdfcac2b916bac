package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/discbot/internal/nano"
)

func TestMemoryStore_FindByName(t *testing.T) {
	m := NewMemoryStore()
	m.AddDisc(nano.DiscRecord{DiscID: 3, DiscName: "Instruction Disc: Nano Programming"})
	m.AddDisc(nano.DiscRecord{DiscID: 1, DiscName: "Nano Crystal"})
	m.AddDisc(nano.DiscRecord{DiscID: 2, DiscName: "Instruction Disc (Light Heal)"})

	ctx := context.Background()

	discs, err := m.FindByName(ctx, "instruction disc")
	require.NoError(t, err)
	require.Len(t, discs, 2)
	// insertion order, not id order
	assert.Equal(t, 3, discs[0].DiscID)
	assert.Equal(t, 2, discs[1].DiscID)

	discs, err = m.FindByName(ctx, "NANO")
	require.NoError(t, err)
	assert.Len(t, discs, 2)

	discs, err = m.FindByName(ctx, "disc crystal")
	require.NoError(t, err)
	assert.Empty(t, discs)

	discs, err = m.FindByName(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, discs)
}

func TestMemoryStore_ReplaceKeepsPosition(t *testing.T) {
	m := NewMemoryStore()
	m.AddDisc(nano.DiscRecord{DiscID: 1, DiscName: "Disc A"})
	m.AddDisc(nano.DiscRecord{DiscID: 2, DiscName: "Disc B"})
	m.AddDisc(nano.DiscRecord{DiscID: 1, DiscName: "Disc A2"})

	assert.Equal(t, 2, m.Len())

	discs, err := m.FindByName(context.Background(), "disc")
	require.NoError(t, err)
	require.Len(t, discs, 2)
	assert.Equal(t, "Disc A2", discs[0].DiscName)
	assert.Equal(t, "Disc B", discs[1].DiscName)
}

func TestMemoryStore_FindByIDAndDetails(t *testing.T) {
	m := NewMemoryStore()
	m.AddDisc(nano.DiscRecord{DiscID: 10, DiscName: "Disc", CrystalID: 11})
	m.AddNano(11, nano.NanoDetails{Profession: "Doctor"})

	ctx := context.Background()

	disc, err := m.FindByID(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, disc)
	assert.Equal(t, 11, disc.CrystalID)

	disc, err = m.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, disc)

	details, err := m.FindNanoDetails(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "Doctor", details.Profession)

	details, err = m.FindNanoDetails(ctx, 12)
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestMemoryStore_ConcurrentReads(t *testing.T) {
	m := NewMemoryStore()
	for i := 0; i < 50; i++ {
		m.AddDisc(nano.DiscRecord{DiscID: i, DiscName: "Instruction Disc"})
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			discs, err := m.FindByName(context.Background(), "disc")
			assert.NoError(t, err)
			assert.Len(t, discs, 50)
		}()
	}
	wg.Wait()
}
