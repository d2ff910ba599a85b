package rom

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/smds/snes"
)

func TestNew(t *testing.T) {
	r, err := New(make([]byte, snes.BankSize*2))
	require.NoError(t, err)
	assert.False(t, r.Headered)
	assert.Len(t, r.Data, snes.BankSize*2)
}

func TestNewCopierHeader(t *testing.T) {
	data := make([]byte, snes.CopierHeaderSize+snes.BankSize)
	data[snes.CopierHeaderSize] = 0x42

	r, err := New(data)
	require.NoError(t, err)
	assert.True(t, r.Headered)
	require.Len(t, r.Data, snes.BankSize)
	assert.Equal(t, byte(0x42), r.Data[0])
}

func TestNewTooSmall(t *testing.T) {
	_, err := New(make([]byte, 0x1000))
	assert.Equal(t, ErrTooSmall, err)
}

func TestBank(t *testing.T) {
	data := make([]byte, snes.BankSize*2)
	data[snes.BankSize] = 0x99

	r, err := New(data)
	require.NoError(t, err)

	b := r.Bank(0x80)
	require.Len(t, b, snes.BankSize)
	assert.Equal(t, byte(0x00), b[0])

	b = r.Bank(0x81)
	require.Len(t, b, snes.BankSize)
	assert.Equal(t, byte(0x99), b[0])

	assert.Nil(t, r.Bank(0x90))
}

func TestTitle(t *testing.T) {
	data := make([]byte, snes.BankSize)
	copy(data[titleOffset:], "SUPER METROID        ")

	r, err := New(data)
	require.NoError(t, err)
	assert.Equal(t, "SUPER METROID", r.Title())
}

func TestChecksum(t *testing.T) {
	// Power of two image: a plain rolling sum.
	data := bytes.Repeat([]byte{0x01}, 0x400)
	assert.Equal(t, uint16(0x400), Checksum(data))

	// Non power of two: the trailing chunk is summed again to pad out
	// to the next power of two.
	data = append(bytes.Repeat([]byte{0x01}, 0x400), bytes.Repeat([]byte{0x02}, 0x200)...)
	assert.Equal(t, uint16(0x400+2*0x400), Checksum(data))
}

func TestVerify(t *testing.T) {
	data := make([]byte, snes.BankSize)

	// With every other byte zero the checksum and complement bytes sum
	// to 0x1fe regardless of the value, so this pair is consistent.
	binary.LittleEndian.PutUint16(data[checksumOffset:], 0x01fe)
	binary.LittleEndian.PutUint16(data[complementOffset:], 0xfe01)

	r, err := New(data)
	require.NoError(t, err)
	assert.True(t, r.Verify())

	data[0] = 0x01
	assert.False(t, r.Verify())
}
