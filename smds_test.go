package smds

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/smds/room"
	"github.com/bodgit/smds/snes"
)

func testSMDS(t *testing.T) *SMDS {
	t.Helper()

	m, err := New(filepath.Join(t.TempDir(), "smds.db"), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	return m
}

func TestCatalog(t *testing.T) {
	m := testSMDS(t)

	require.NoError(t, m.catalog.AddArtifact("tilesets/cre.bin", "tileset", 0x1c8000, []byte{0x01, 0x02}))
	require.NoError(t, m.catalog.AddArtifact("palettes/palette_000.bin", "palette", 0x210000, make([]byte, 512)))

	count, err := m.catalog.Artifacts("")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = m.catalog.Artifacts("palette")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	h := room.Header{Offset: 0x791f8, Index: 1, Area: 0, MapX: 3, MapY: 4, Width: 9, Height: 5, DoorPtr: 0x1234}
	require.NoError(t, m.catalog.AddRoom(h))

	rooms, err := m.catalog.Rooms()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, h, rooms[0])
}

func TestExtract(t *testing.T) {
	m := testSMDS(t)

	// Sixteen banks reach the room header bank; the tileset and
	// palette banks fall outside and are skipped.
	data := make([]byte, snes.BankSize*16)

	table := snes.ToROM(0x8f, 0x91f8)
	for i := 11; i < 20; i++ {
		data[table+i] = 0xff
	}
	copy(data[table:], []byte{0x01, 0x00, 0x03, 0x04, 0x09, 0x05, 0x70, 0xa0, 0x00, 0x34, 0x12})
	copy(data[table+20:], []byte{0x2a, 0x02, 0x07, 0x08, 0x01, 0x0f, 0x70, 0xa0, 0x00, 0x78, 0x56})

	dir := t.TempDir()
	romPath := filepath.Join(dir, "sm.sfc")
	require.NoError(t, ioutil.WriteFile(romPath, data, 0644))

	out := filepath.Join(dir, "assets_raw")
	require.NoError(t, m.Extract(romPath, out))

	// Both planted headers were discovered and written out.
	_, err := os.Stat(filepath.Join(out, "rooms", "crateria", "room_000_0x0791F8.bin"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "rooms", "crateria", "room_001_0x07920C.bin"))
	assert.NoError(t, err)

	index, err := ioutil.ReadFile(filepath.Join(out, "rooms", "room_index.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(index), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Total rooms found: 2", lines[0])
	assert.Contains(t, lines[2], "Room at 0x0791F8:")

	rooms, err := m.catalog.Rooms()
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	// Sprite banks start past the end of a sixteen bank image and are
	// skipped, not fatal.
	_, err = os.Stat(filepath.Join(out, "sprites", "samus_bank_90.bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "tiles", classify(filepath.Join("tilesets", "cre.bin")))
	assert.Equal(t, "tiles", classify(filepath.Join("sprites", "enemies", "enemy_bank_AB.bin")))
	assert.Equal(t, "palette", classify(filepath.Join("palettes", "palette_000.bin")))
	assert.Equal(t, "map", classify(filepath.Join("tilemaps", "brinstar.bin")))
	assert.Equal(t, "", classify(filepath.Join("rooms", "crateria", "room_000.bin")))
	assert.Equal(t, "", classify("stray.bin"))
}

func TestConvert(t *testing.T) {
	m := testSMDS(t)

	raw := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(raw, "tilesets"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(raw, "palettes"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(raw, "tilemaps"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(raw, "rooms"), 0755))

	require.NoError(t, ioutil.WriteFile(filepath.Join(raw, "tilesets", "cre.bin"), make([]byte, 64), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(raw, "palettes", "good.bin"), make([]byte, 512), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(raw, "palettes", "bad.bin"), make([]byte, 33), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(raw, "tilemaps", "map.bin"), make([]byte, 8), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(raw, "rooms", "room_000.bin"), make([]byte, 11), 0644))

	result, err := m.Convert(raw, out)
	require.NoError(t, err)

	// The odd length palette fails alone; the rest of the batch
	// carries on.
	assert.Equal(t, 3, result.Converted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)

	converted, err := ioutil.ReadFile(filepath.Join(out, "tilesets", "cre.bin"))
	require.NoError(t, err)
	assert.Len(t, converted, 64)

	_, err = os.Stat(filepath.Join(out, "palettes", "bad.bin"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(out, "rooms", "room_000.bin"))
	assert.True(t, os.IsNotExist(err))
}
