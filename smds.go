/*
Package smds extracts Super Metroid assets from a SNES cartridge image
and converts them into the formats the DS hardware wants.
*/
package smds

import (
	"log"

	"github.com/bodgit/smds/room"
	"github.com/bodgit/smds/snes"
)

type SMDS struct {
	addresses snes.AddressMap
	catalog   *Catalog
	logger    *log.Logger
}

func New(db string, logger *log.Logger) (*SMDS, error) {
	catalog, err := NewCatalog(db)
	if err != nil {
		return nil, err
	}

	return &SMDS{
		addresses: snes.Addresses(),
		catalog:   catalog,
		logger:    logger,
	}, nil
}

func (m *SMDS) Close() error {
	return m.catalog.Close()
}

// Rooms returns every room header recorded in the catalog, in image
// order.
func (m *SMDS) Rooms() ([]room.Header, error) {
	return m.catalog.Rooms()
}
