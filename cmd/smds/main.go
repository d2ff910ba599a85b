package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
	"github.com/urfave/cli/v2"

	"github.com/bodgit/smds"
	"github.com/bodgit/smds/palette"
	"github.com/bodgit/smds/preview"
	"github.com/bodgit/smds/room"
	"github.com/bodgit/smds/tile"
	"github.com/bodgit/smds/tilemap"
)

const defaultDB = "smds.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newSMDS(c *cli.Context) (*smds.SMDS, error) {
	return smds.New(c.String("db"), newLogger(c))
}

func main() {
	app := cli.NewApp()

	app.Name = "smds"
	app.Usage = "Super Metroid SNES to DS asset conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SMDS_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to artifact catalog",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "extract",
			Usage:       "Extract raw assets from a cartridge image",
			Description: "",
			ArgsUsage:   "ROM DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newSMDS(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Extract(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Batch convert extracted assets to DS formats",
			Description: "",
			ArgsUsage:   "RAWDIR OUTDIR",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newSMDS(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				result, err := m.Convert(c.Args().Get(0), c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if result.Failed > 0 {
					return cli.NewExitError(fmt.Errorf("%d artifacts failed conversion", result.Failed), 1)
				}

				return nil
			},
		},
		{
			Name:        "tiles",
			Usage:       "Convert one file of SNES planar tiles to DS format",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				data, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				converted, result, err := tile.ConvertAll(data, tile.Size)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if result.Remainder > 0 {
					logger.Printf("WARNING: skipped %d trailing bytes\n", result.Remainder)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), converted, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Validate and copy a BGR555 palette",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				data, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				converted, stats, err := palette.Convert(data)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if stats.Unconventional() {
					logger.Printf("WARNING: %d colors, expected 256\n", stats.Colors)
				}
				if stats.Reserved > 0 {
					logger.Printf("WARNING: %d/%d colors have the reserved bit set\n", stats.Reserved, stats.Colors)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), converted, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "tilemap",
			Usage:       "Convert a SNES BG tilemap to DS BG map format",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				data, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				converted, stats, err := tilemap.Convert(data)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, i := range stats.Clamped {
					logger.Printf("WARNING: tile number at entry %d exceeds limit, truncating\n", i)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), converted, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render converted tiles and a palette to a PNG",
			Description: "",
			ArgsUsage:   "TILES PALETTE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer upscale factor",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				tiles, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				pal, err := ioutil.ReadFile(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := preview.Render(tiles, pal)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var img image.Image = m
				if scale := c.Int("scale"); scale > 1 {
					b := m.Bounds()
					img = transform.Resize(m, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
				}

				f, err := os.Create(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := png.Encode(f, img); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Encode an image into DS tiles and a palette",
			Description: "",
			ArgsUsage:   "IMAGE TILES PALETTE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				m, _, err := image.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				tiles, pal, err := preview.Encode(m)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), tiles, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := ioutil.WriteFile(c.Args().Get(2), pal, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "rooms",
			Usage:       "List cataloged room headers",
			Description: "",
			ArgsUsage:   "",
			Action: func(c *cli.Context) error {
				m, err := newSMDS(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				rooms, err := m.Rooms()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := room.WriteIndex(os.Stdout, rooms); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
