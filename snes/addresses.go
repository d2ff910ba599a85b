package snes

// Region names one stretch of the image used during extraction. The zero
// value is not useful; regions come from an AddressMap.
type Region struct {
	Name string
	Bank int
	Addr int
}

// Offset returns the region's file offset.
func (r Region) Offset() int {
	return ToROM(r.Bank, r.Addr)
}

// AddressMap is the static table of known data locations within the
// image. It is configuration consumed by the extractor and scanner; it is
// never mutated.
type AddressMap struct {
	// RoomTables holds the per-area room header tables in bank $8F, in
	// area order.
	RoomTables []Region

	// RoomScanWindow bounds how far past each room table the scanner
	// walks.
	RoomScanWindow int

	// RoomBankEnd is the file offset of the last mapped byte of the
	// room header bank.
	RoomBankEnd int

	// Tilesets holds the compressed tileset regions, common elements
	// first.
	Tilesets []Region

	// Palettes is the start of palette data and PaletteWindow how many
	// bytes of it to sweep.
	Palettes      Region
	PaletteWindow int

	// SpriteBanks, EnemyBanks and MusicBanks are copied out raw, one
	// bank at a time.
	SpriteBanks []int
	EnemyBanks  []int
	MusicBanks  []int
}

// Addresses returns the Super Metroid address map. All values come from
// the community disassembly.
func Addresses() AddressMap {
	m := AddressMap{
		RoomTables: []Region{
			{"crateria", 0x8f, 0x91f8},
			{"brinstar", 0x8f, 0x92b0},
			{"norfair", 0x8f, 0x93b8},
			{"wrecked_ship", 0x8f, 0x948c},
			{"maridia", 0x8f, 0x9510},
			{"tourian", 0x8f, 0x95dc},
			{"ceres", 0x8f, 0x962a},
		},
		RoomScanWindow: 0x2000,
		RoomBankEnd:    ToROM(0x8f, 0xffff),
		Tilesets: []Region{
			{"cre", 0xb9, 0x8000},
			{"crateria", 0xba, 0x8000},
			{"brinstar", 0xbb, 0x8000},
			{"norfair", 0xbc, 0x8000},
			{"wrecked_ship", 0xbd, 0x8000},
			{"maridia", 0xbe, 0x8000},
			{"tourian", 0xbf, 0x8000},
			{"ceres", 0xc0, 0x8000},
		},
		Palettes:      Region{"palettes", 0xc2, 0x8000},
		PaletteWindow: 0x4000,
	}

	for bank := 0x90; bank < 0xa0; bank++ {
		m.SpriteBanks = append(m.SpriteBanks, bank)
	}
	for bank := 0xab; bank < 0xb2; bank++ {
		m.EnemyBanks = append(m.EnemyBanks, bank)
	}
	m.EnemyBanks = append(m.EnemyBanks, 0xb7)
	for bank := 0xcf; bank < 0xdf; bank++ {
		m.MusicBanks = append(m.MusicBanks, bank)
	}

	return m
}
