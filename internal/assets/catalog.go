// Package assets finds and loads the terrains the game cycles through.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
)

// ErrNoTerrain is returned when there is nothing to load.
var ErrNoTerrain = errors.New("no terrain available")

var entryName = regexp.MustCompile(`^\d+_\d+$`)

// Catalog cycles through the terrain directories under a root in a shuffled
// order. An entry holds either the four source grids or the quadrant PNGs
// written by a previous build. When the root has no entries a remote source
// can stand in.
type Catalog struct {
	root    string
	size    int
	rng     *rng.RNG
	log     *zap.Logger
	builder *heightfield.Builder

	entries []string
	next    int
	remote  heightfield.Source
	output  string

	cache *Cache[*heightfield.Result]
}

// NewCatalog creates a catalog over root for grids of size samples.
func NewCatalog(root string, size int, r *rng.RNG, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		root:    root,
		size:    size,
		rng:     r,
		log:     log,
		builder: heightfield.NewBuilder(size),
		cache:   NewCache[*heightfield.Result](),
	}
}

// SetRemote sets the fallback source used when the root has no entries.
func (c *Catalog) SetRemote(src heightfield.Source) {
	c.remote = src
}

// SetOutput makes every built terrain also be written under dir/<name>.
func (c *Catalog) SetOutput(dir string) {
	c.output = dir
}

// Scan lists the entries under root and shuffles them. A missing root is an
// empty catalog.
func (c *Catalog) Scan() error {
	list, err := os.ReadDir(c.root)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("scan %s: %w", c.root, err)
	}

	c.entries = c.entries[:0]
	for _, e := range list {
		if e.IsDir() && entryName.MatchString(e.Name()) {
			c.entries = append(c.entries, e.Name())
		}
	}
	slices.Sort(c.entries)
	if c.rng != nil {
		c.rng.Shuffle(len(c.entries), func(i, j int) {
			c.entries[i], c.entries[j] = c.entries[j], c.entries[i]
		})
	}
	c.next = 0

	c.log.Info("terrain catalog scanned",
		zap.String("root", c.root),
		zap.Int("entries", len(c.entries)),
		zap.Bool("remote", c.remote != nil))
	return nil
}

// Entries returns the entry names in play order.
func (c *Catalog) Entries() []string {
	return c.entries
}

// Len returns the number of local entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Next returns the next entry name, wrapping around at the end.
func (c *Catalog) Next() (string, error) {
	if len(c.entries) == 0 {
		if c.remote != nil {
			return c.remote.Name(), nil
		}
		return "", ErrNoTerrain
	}
	name := c.entries[c.next%len(c.entries)]
	c.next = (c.next + 1) % len(c.entries)
	return name, nil
}

// Load returns the built heightfield of the named entry.
func (c *Catalog) Load(ctx context.Context, name string) (*heightfield.Result, error) {
	if res, ok := c.cache.Get(name); ok {
		return res, nil
	}

	res, err := c.load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load terrain %s: %w", name, err)
	}
	c.cache.Set(name, res)

	if c.output != "" {
		dir := filepath.Join(c.output, name)
		if err := res.Save(dir); err != nil {
			c.log.Warn("failed to save terrain", zap.String("dir", dir), zap.Error(err))
		}
	}
	return res, nil
}

// LoadNext advances the catalog and loads that entry.
func (c *Catalog) LoadNext(ctx context.Context) (string, *heightfield.Result, error) {
	name, err := c.Next()
	if err != nil {
		return "", nil, err
	}
	res, err := c.Load(ctx, name)
	if err != nil {
		return "", nil, err
	}
	return name, res, nil
}

func (c *Catalog) load(ctx context.Context, name string) (*heightfield.Result, error) {
	if len(c.entries) == 0 && c.remote != nil && name == c.remote.Name() {
		c.log.Info("fetching remote terrain", zap.String("name", name))
		return c.build(ctx, c.remote)
	}

	dir := filepath.Join(c.root, name)
	if prebuilt(dir) {
		tiles, err := heightfield.ReadTiles(dir, c.size)
		if err != nil {
			return nil, err
		}
		res := &heightfield.Result{Tiles: tiles}
		if img, err := heightfield.ReadPNG(filepath.Join(dir, heightfield.CombinedFileName)); err == nil {
			res.Combined = img
		}
		c.log.Debug("loaded prebuilt terrain", zap.String("dir", dir))
		return res, nil
	}
	return c.build(ctx, heightfield.NewDirSource(dir, c.size))
}

func (c *Catalog) build(ctx context.Context, src heightfield.Source) (*heightfield.Result, error) {
	grids, err := src.Grids(ctx)
	if err != nil {
		return nil, err
	}
	res, err := c.builder.Build(grids)
	if err != nil {
		return nil, err
	}
	c.log.Info("heightfield built",
		zap.String("name", src.Name()),
		zap.Int("tile_pixels", res.Tiles.Get(heightfield.TopLeft).Size))
	return res, nil
}

// prebuilt reports whether dir holds all four quadrant PNGs.
func prebuilt(dir string) bool {
	for _, q := range heightfield.Quadrants {
		if _, err := os.Stat(filepath.Join(dir, q.FileName())); err != nil {
			return false
		}
	}
	return true
}

// CacheStats returns hit and miss counts of loaded terrains.
func (c *Catalog) CacheStats() (hits, misses int) {
	return c.cache.Stats()
}
