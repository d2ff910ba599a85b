package smds

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/smds/lz"
	"github.com/bodgit/smds/rom"
	"github.com/bodgit/smds/room"
	"github.com/bodgit/smds/snes"
)

const (
	// tilesetMax caps tileset decompression; the streams carry no
	// length so the cap is the only bound on malformed data.
	tilesetMax = 0x20000

	// paletteBlock is one full 256 color palette.
	paletteBlock = 512
)

// Extract pulls every known asset class out of the image at romPath into
// dir: palettes, decompressed tilesets, room headers, sprite banks and
// music banks. Everything written is recorded in the catalog.
func (m *SMDS) Extract(romPath, dir string) error {
	r, err := rom.Load(romPath)
	if err != nil {
		return err
	}

	if r.Headered {
		m.logger.Println("Stripped 512-byte copier header")
	}
	m.logger.Printf("ROM size: %d bytes (0x%06X)\n", len(r.Data), len(r.Data))
	if len(r.Data) != snes.ROMSize {
		m.logger.Printf("WARNING: expected %d bytes, got %d\n", snes.ROMSize, len(r.Data))
	}
	if !r.Verify() {
		m.logger.Println("WARNING: internal header checksum does not match")
	}
	if title := r.Title(); title != "" {
		m.logger.Printf("Cartridge: %q\n", title)
	}

	if err := m.extractPalettes(r, dir); err != nil {
		return err
	}
	if err := m.extractTilesets(r, dir); err != nil {
		return err
	}
	if err := m.extractRooms(r, dir); err != nil {
		return err
	}
	if err := m.extractBanks(r, filepath.Join(dir, "sprites"), "sprite", "samus_bank", m.addresses.SpriteBanks); err != nil {
		return err
	}
	if err := m.extractBanks(r, filepath.Join(dir, "sprites", "enemies"), "sprite", "enemy_bank", m.addresses.EnemyBanks); err != nil {
		return err
	}
	return m.extractBanks(r, filepath.Join(dir, "audio"), "audio", "music_bank", m.addresses.MusicBanks)
}

func (m *SMDS) writeArtifact(path, kind string, offset int, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return err
	}
	return m.catalog.AddArtifact(path, kind, offset, data)
}

func allBytes(data []byte, b byte) bool {
	for _, v := range data {
		if v != b {
			return false
		}
	}
	return true
}

// extractPalettes sweeps the palette bank in full palette sized blocks,
// skipping blocks that are clearly padding.
func (m *SMDS) extractPalettes(r *rom.ROM, dir string) error {
	start := m.addresses.Palettes.Offset()

	count := 0
	for offset := start; offset < start+m.addresses.PaletteWindow && offset+paletteBlock <= len(r.Data); offset += paletteBlock {
		block := r.Data[offset : offset+paletteBlock]
		if allBytes(block, 0x00) || allBytes(block, 0xff) {
			continue
		}

		path := filepath.Join(dir, "palettes", fmt.Sprintf("palette_%03d.bin", count))
		if err := m.writeArtifact(path, "palette", offset, block); err != nil {
			return err
		}
		count++
	}

	m.logger.Printf("Extracted %d palette sets\n", count)
	return nil
}

func (m *SMDS) extractTilesets(r *rom.ROM, dir string) error {
	count := 0
	for _, region := range m.addresses.Tilesets {
		offset := region.Offset()
		if offset >= len(r.Data) {
			m.logger.Printf("WARNING: tileset %s is beyond the end of the image\n", region.Name)
			continue
		}

		decompressed := lz.Decompress(r.Data, offset, tilesetMax)
		if len(decompressed) == 0 {
			m.logger.Printf("WARNING: empty decompression result for %s\n", region.Name)
			continue
		}

		path := filepath.Join(dir, "tilesets", region.Name+".bin")
		if err := m.writeArtifact(path, "tileset", offset, decompressed); err != nil {
			return err
		}
		m.logger.Printf("%s: %d bytes decompressed\n", region.Name, len(decompressed))
		count++
	}

	m.logger.Printf("Extracted %d tilesets\n", count)
	return nil
}

func (m *SMDS) extractRooms(r *rom.ROM, dir string) error {
	s := &room.Scanner{}
	var rooms []room.Header

	for _, region := range m.addresses.RoomTables {
		offset := region.Offset()
		end := offset + m.addresses.RoomScanWindow
		if end > m.addresses.RoomBankEnd {
			end = m.addresses.RoomBankEnd
		}

		areaDir := filepath.Join(dir, "rooms", region.Name)

		count := 0
		found, err := s.Scan(r.Data, offset, end, func(h room.Header, raw []byte) error {
			path := filepath.Join(areaDir, fmt.Sprintf("room_%03d_0x%06X.bin", count, h.Offset))
			if err := m.writeArtifact(path, "room", h.Offset, raw); err != nil {
				return err
			}
			count++
			return m.catalog.AddRoom(h)
		})
		if err != nil {
			return err
		}

		if len(found) > 0 {
			m.logger.Printf("%s: %d rooms\n", region.Name, len(found))
		}
		rooms = append(rooms, found...)
	}

	roomDir := filepath.Join(dir, "rooms")
	if err := os.MkdirAll(roomDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(roomDir, "room_index.txt"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := room.WriteIndex(f, rooms); err != nil {
		return err
	}

	m.logger.Printf("Total: %d rooms extracted\n", len(rooms))
	return nil
}

func (m *SMDS) extractBanks(r *rom.ROM, dir, kind, prefix string, banks []int) error {
	count := 0
	for _, bank := range banks {
		data := r.Bank(bank)
		if data == nil {
			m.logger.Printf("WARNING: bank $%02X is beyond the end of the image\n", bank)
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%02X.bin", prefix, bank))
		if err := m.writeArtifact(path, kind, snes.ToROM(bank, 0x8000), data); err != nil {
			return err
		}
		count++
	}

	m.logger.Printf("Extracted %d %s banks\n", count, kind)
	return nil
}
