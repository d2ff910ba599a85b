package smds

import (
	"database/sql"
	"fmt"
	"hash/crc32"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bodgit/smds/room"
)

// Catalog records extracted artifacts and discovered rooms in a sqlite
// database so later stages can find them without rescanning the image.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS artifact (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, kind STRING NOT NULL, offset INTEGER NOT NULL, size INTEGER NOT NULL, crc TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS room (id INTEGER PRIMARY KEY NOT NULL, offset INTEGER NOT NULL UNIQUE, area INTEGER NOT NULL, idx INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, map_x INTEGER NOT NULL, map_y INTEGER NOT NULL, door_ptr INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// AddArtifact records one extracted file, replacing any previous entry
// for the same path.
func (c *Catalog) AddArtifact(path, kind string, offset int, data []byte) error {
	crc := fmt.Sprintf("%08X", crc32.ChecksumIEEE(data))
	_, err := c.db.Exec("INSERT OR REPLACE INTO artifact (path, kind, offset, size, crc) VALUES (?, ?, ?, ?, ?)", path, kind, offset, len(data), crc)
	return err
}

// Artifacts returns the number of cataloged artifacts of the given kind,
// or of any kind when kind is empty.
func (c *Catalog) Artifacts(kind string) (int, error) {
	var count int
	var err error
	if kind == "" {
		err = c.db.QueryRow("SELECT COUNT(*) FROM artifact").Scan(&count)
	} else {
		err = c.db.QueryRow("SELECT COUNT(*) FROM artifact WHERE kind = ?", kind).Scan(&count)
	}
	return count, err
}

// AddRoom records one discovered room header, replacing any previous
// entry at the same offset.
func (c *Catalog) AddRoom(h room.Header) error {
	_, err := c.db.Exec("INSERT OR REPLACE INTO room (offset, area, idx, width, height, map_x, map_y, door_ptr) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		h.Offset, h.Area, h.Index, h.Width, h.Height, h.MapX, h.MapY, h.DoorPtr)
	return err
}

// Rooms returns every cataloged room header in image order.
func (c *Catalog) Rooms() ([]room.Header, error) {
	rows, err := c.db.Query("SELECT offset, area, idx, width, height, map_x, map_y, door_ptr FROM room ORDER BY offset")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []room.Header
	for rows.Next() {
		var h room.Header
		if err := rows.Scan(&h.Offset, &h.Area, &h.Index, &h.Width, &h.Height, &h.MapX, &h.MapY, &h.DoorPtr); err != nil {
			return nil, err
		}
		rooms = append(rooms, h)
	}

	return rooms, rows.Err()
}
