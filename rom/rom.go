/*
Package rom loads SNES cartridge images.

Dumps sometimes carry a legacy 512 byte copier header before the actual
data; it is detected by the file size modulo the bank size and stripped
before any address math.
*/
package rom

import (
	"errors"
	"io/ioutil"
	"strings"

	"github.com/bodgit/smds/snes"
)

// ErrTooSmall is returned for images shorter than one bank.
var ErrTooSmall = errors.New("rom: image is smaller than one bank")

// ROM is a loaded, unheadered image.
type ROM struct {
	// Data is the image with any copier header removed.
	Data []byte

	// Headered records whether a copier header was stripped.
	Headered bool
}

// New wraps raw file contents, stripping the copier header when present.
func New(data []byte) (*ROM, error) {
	r := &ROM{Data: data}

	if len(data)%snes.BankSize == snes.CopierHeaderSize {
		r.Data = data[snes.CopierHeaderSize:]
		r.Headered = true
	}

	if len(r.Data) < snes.BankSize {
		return nil, ErrTooSmall
	}

	return r, nil
}

// Load reads the image at path.
func Load(path string) (*ROM, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return New(data)
}

// Bank returns the data mapped into the given bank, clamped to the end of
// the image.
func (r *ROM) Bank(bank int) []byte {
	offset := snes.ToROM(bank, 0x8000)
	if offset >= len(r.Data) {
		return nil
	}

	end := offset + snes.BankSize
	if end > len(r.Data) {
		end = len(r.Data)
	}

	return r.Data[offset:end]
}

// Title returns the cartridge name from the internal header, trimmed of
// padding.
func (r *ROM) Title() string {
	if len(r.Data) < titleOffset+titleLength {
		return ""
	}

	return strings.TrimRight(string(r.Data[titleOffset:titleOffset+titleLength]), " \x00")
}
