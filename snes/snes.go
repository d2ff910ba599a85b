/*
Package snes translates SNES addresses into offsets within a cartridge
image file.

Super Metroid uses LoROM mapping; the community disassembly addresses use
banks $80-$FF with the CPU-visible window at $8000-$FFFF. Each bank maps
32 KB of the image, so bank $80 starts at file offset 0, bank $81 at
$8000 and so on.
*/
package snes

const (
	// BankSize is the number of image bytes mapped into each bank.
	BankSize = 0x8000

	// ROMSize is the expected size of an unheadered image: 3 MB (24 Mbit).
	ROMSize = 0x300000

	// CopierHeaderSize is the size of the optional copier header some
	// dumps carry before the actual data.
	CopierHeaderSize = 512
)

// ToROM converts a bank:addr pair to a file offset within an unheadered
// image. addr must be at least $8000; lower values fall outside the ROM
// window and are not mappable by this layout. Results beyond the end of
// the image are the caller's to bound-check.
func ToROM(bank, addr int) int {
	return (bank&0x7f)*BankSize + addr - 0x8000
}

// LongToROM converts a 24-bit long address to a file offset by splitting
// it into bank and address halves.
func LongToROM(long int) int {
	return ToROM(long>>16&0xff, long&0xffff)
}
