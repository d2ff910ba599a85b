package smds

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/smds/palette"
	"github.com/bodgit/smds/tile"
	"github.com/bodgit/smds/tilemap"
)

// ConvertResult summarizes a batch conversion.
type ConvertResult struct {
	Converted int
	Failed    int
	Skipped   int
}

type job struct {
	path string
	rel  string
	kind string
}

// classify maps the top level directory an artifact was extracted into to
// the conversion it needs. Room headers, audio and anything unknown pass
// through the batch untouched.
func classify(rel string) string {
	dir := rel
	for {
		parent := filepath.Dir(dir)
		if parent == "." || parent == string(filepath.Separator) {
			break
		}
		dir = parent
	}

	switch dir {
	case "tilesets", "sprites":
		return "tiles"
	case "palettes":
		return "palette"
	case "tilemaps":
		return "map"
	}
	return ""
}

func (m *SMDS) findArtifacts(ctx context.Context, base string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != ".bin" {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- job{path: file, rel: rel, kind: classify(rel)}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *SMDS) convertArtifact(j job, out string) error {
	data, err := ioutil.ReadFile(j.path)
	if err != nil {
		return err
	}

	var converted []byte

	switch j.kind {
	case "tiles":
		var result tile.Result
		if converted, result, err = tile.ConvertAll(data, tile.Size); err != nil {
			return err
		}
		if result.Remainder > 0 {
			m.logger.Printf("WARNING: %s: skipped %d trailing bytes\n", j.rel, result.Remainder)
		}
	case "palette":
		var stats palette.Stats
		if converted, stats, err = palette.Convert(data); err != nil {
			return err
		}
		if stats.Unconventional() {
			m.logger.Printf("WARNING: %s: %d colors, expected %d\n", j.rel, stats.Colors, palette.ConventionalSize/palette.EntrySize)
		}
		if stats.Reserved > 0 {
			m.logger.Printf("WARNING: %s: %d/%d colors have the reserved bit set\n", j.rel, stats.Reserved, stats.Colors)
		}
	case "map":
		var stats tilemap.Stats
		if converted, stats, err = tilemap.Convert(data); err != nil {
			return err
		}
		for _, i := range stats.Clamped {
			m.logger.Printf("WARNING: %s: tile number at entry %d exceeds limit, truncating\n", j.rel, i)
		}
	}

	target := filepath.Join(out, j.rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	return ioutil.WriteFile(target, converted, 0644)
}

func (m *SMDS) conversionWorker(ctx context.Context, in <-chan job, out string, result *ConvertResult, mu *sync.Mutex) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if j.kind == "" {
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				continue
			}

			// A bad artifact only fails itself; the batch carries
			// on and reports the aggregate count.
			if err := m.convertArtifact(j, out); err != nil {
				m.logger.Printf("%s: %v\n", j.rel, err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				continue
			}

			mu.Lock()
			result.Converted++
			mu.Unlock()
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert batch converts every artifact under raw into its DS format
// under out, mirroring the directory layout. Tile and palette and
// tilemap artifacts are transcoded; everything else is skipped. A file
// that fails conversion is counted and logged but does not stop the
// batch.
func (m *SMDS) Convert(raw, out string) (ConvertResult, error) {
	var result ConvertResult

	base, err := filepath.Abs(raw)
	if err != nil {
		return result, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := m.findArtifacts(ctx, base)
	if err != nil {
		return result, err
	}
	errcList = append(errcList, errc)

	var mu sync.Mutex
	for i := 0; i < 10; i++ {
		errc, err := m.conversionWorker(ctx, jobs, out, &result, &mu)
		if err != nil {
			return result, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return result, err
	}

	m.logger.Printf("Converted %d artifacts, %d failed, %d skipped\n", result.Converted, result.Failed, result.Skipped)
	return result, nil
}
