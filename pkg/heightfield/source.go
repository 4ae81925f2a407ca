package heightfield

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultTileURL is the elevation tile service used by RemoteSource.
const DefaultTileURL = "https://cyberjapandata.gsi.go.jp/xyz/dem/{z}/{x}/{y}.txt"

// Source provides the 2x2 arrangement of source grids for one terrain.
type Source interface {
	Name() string
	Grids(ctx context.Context) ([2][2]*Grid, error)
}

// tileOffsets are the (x, y) tile offsets of the [row][col] arrangement.
var tileOffsets = [2][2][2]int{
	{{0, 0}, {1, 0}},
	{{0, 1}, {1, 1}},
}

// DirSource reads grids from a directory named "<x>_<y>" that holds
// x_y.txt, x+1_y.txt, x_y+1.txt and x+1_y+1.txt.
type DirSource struct {
	Dir  string
	Size int
	// Load reads one grid; nil means LoadGrid.
	Load func(path string, size int) (*Grid, error)
}

// NewDirSource creates a source for a terrain directory.
func NewDirSource(dir string, size int) *DirSource {
	return &DirSource{Dir: dir, Size: size}
}

// ParseTileName splits "<x>_<y>" into tile coordinates.
func ParseTileName(name string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(name, "_")
	if !ok {
		return 0, 0, fmt.Errorf("invalid tile name %q", name)
	}
	if x, err = strconv.Atoi(xs); err != nil {
		return 0, 0, fmt.Errorf("invalid tile name %q: %w", name, err)
	}
	if y, err = strconv.Atoi(ys); err != nil {
		return 0, 0, fmt.Errorf("invalid tile name %q: %w", name, err)
	}
	return x, y, nil
}

// Name returns the directory base name.
func (s *DirSource) Name() string {
	return filepath.Base(s.Dir)
}

// Files returns the four grid paths in [row][col] order.
func (s *DirSource) Files() ([2][2]string, error) {
	var out [2][2]string
	x, y, err := ParseTileName(s.Name())
	if err != nil {
		return out, err
	}
	for row := range tileOffsets {
		for col, off := range tileOffsets[row] {
			out[row][col] = filepath.Join(s.Dir, fmt.Sprintf("%d_%d.txt", x+off[0], y+off[1]))
		}
	}
	return out, nil
}

// Grids loads the four grids.
func (s *DirSource) Grids(ctx context.Context) ([2][2]*Grid, error) {
	var grids [2][2]*Grid
	files, err := s.Files()
	if err != nil {
		return grids, err
	}
	load := s.Load
	if load == nil {
		load = LoadGrid
	}
	for row := range files {
		for col, path := range files[row] {
			if err := ctx.Err(); err != nil {
				return grids, err
			}
			g, err := load(path, s.Size)
			if err != nil {
				return [2][2]*Grid{}, err
			}
			grids[row][col] = g
		}
	}
	return grids, nil
}

// RemoteSource fetches the four grids (x,y), (x+1,y), (x,y+1), (x+1,y+1) from
// an elevation tile service.
type RemoteSource struct {
	URL     string
	Z, X, Y int
	Size    int
	Client  *http.Client
}

// NewRemoteSource creates a source for the default tile service.
func NewRemoteSource(z, x, y, size int) *RemoteSource {
	return &RemoteSource{URL: DefaultTileURL, Z: z, X: x, Y: y, Size: size, Client: http.DefaultClient}
}

// Name returns "<x>_<y>".
func (s *RemoteSource) Name() string {
	return fmt.Sprintf("%d_%d", s.X, s.Y)
}

// TileURL expands the URL template for one tile.
func (s *RemoteSource) TileURL(x, y int) string {
	tmpl := s.URL
	if tmpl == "" {
		tmpl = DefaultTileURL
	}
	r := strings.NewReplacer("{z}", strconv.Itoa(s.Z), "{x}", strconv.Itoa(x), "{y}", strconv.Itoa(y))
	return r.Replace(tmpl)
}

// Grids downloads and parses the four grids.
func (s *RemoteSource) Grids(ctx context.Context) ([2][2]*Grid, error) {
	var grids [2][2]*Grid
	for row := range tileOffsets {
		for col, off := range tileOffsets[row] {
			g, err := s.fetch(ctx, s.TileURL(s.X+off[0], s.Y+off[1]))
			if err != nil {
				return [2][2]*Grid{}, err
			}
			grids[row][col] = g
		}
	}
	return grids, nil
}

func (s *RemoteSource) fetch(ctx context.Context, url string) (*Grid, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}

	g, err := ParseGrid(resp.Body, s.Size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return g, nil
}
