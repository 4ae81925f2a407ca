// hftool builds and inspects terrain heightfields.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Faultbox/avoid-balls/pkg/heightfield"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build", "b":
		cmdBuild(args)
	case "fetch":
		cmdFetch(args)
	case "mirror":
		cmdMirror(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hftool - terrain heightfield utility

Usage:
  hftool <command> [options]

Commands:
  build [-size N] [-o dir] <x_y dir>       Build tiles from four CSV grids
  fetch [-size N] [-o dir] [-url U] <z> <x> <y>
                                           Build tiles from the elevation service
  mirror [-size N] [-o dir] <file.csv>     Build a symmetric terrain from one grid
  info <file.png>                          Show heightfield statistics

Examples:
  hftool build terrains/100_200
  hftool fetch 14 14515 6463
  hftool mirror -size 64 hill.csv
  hftool info terrains/100_200/heightfield.png`)
}

type buildFlags struct {
	fs   *flag.FlagSet
	size *int
	out  *string
}

func newBuildFlags(name string) buildFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return buildFlags{
		fs:   fs,
		size: fs.Int("size", heightfield.DefaultTileSize, "Samples per grid side"),
		out:  fs.String("o", "", "Output directory (default: next to the source)"),
	}
}

func cmdBuild(args []string) {
	bf := newBuildFlags("build")
	bf.fs.Parse(args)

	if bf.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hftool build [-size N] [-o dir] <x_y dir>")
		os.Exit(1)
	}
	dir := bf.fs.Arg(0)

	src := heightfield.NewDirSource(dir, *bf.size)
	grids, err := src.Grids(context.Background())
	if err != nil {
		fatal(err)
	}
	out := *bf.out
	if out == "" {
		out = dir
	}
	build(grids, *bf.size, out)
}

func cmdFetch(args []string) {
	bf := newBuildFlags("fetch")
	url := bf.fs.String("url", heightfield.DefaultTileURL, "Tile URL template")
	timeout := bf.fs.Duration("timeout", 30*time.Second, "Request timeout")
	bf.fs.Parse(args)

	if bf.fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: hftool fetch [-size N] [-o dir] [-url U] <z> <x> <y>")
		os.Exit(1)
	}
	var zxy [3]int
	for i := range zxy {
		v, err := strconv.Atoi(bf.fs.Arg(i))
		if err != nil {
			fatal(fmt.Errorf("bad tile coordinate %q: %w", bf.fs.Arg(i), err))
		}
		zxy[i] = v
	}

	src := heightfield.NewRemoteSource(zxy[0], zxy[1], zxy[2], *bf.size)
	src.URL = *url
	src.Client = &http.Client{Timeout: *timeout}

	ctx, cancel := context.WithTimeout(context.Background(), 4*(*timeout))
	defer cancel()

	grids, err := src.Grids(ctx)
	if err != nil {
		fatal(err)
	}
	out := *bf.out
	if out == "" {
		out = src.Name()
	}
	build(grids, *bf.size, out)
}

func cmdMirror(args []string) {
	bf := newBuildFlags("mirror")
	bf.fs.Parse(args)

	if bf.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hftool mirror [-size N] [-o dir] <file.csv>")
		os.Exit(1)
	}
	path := bf.fs.Arg(0)

	g, err := heightfield.LoadGrid(path, *bf.size)
	if err != nil {
		fatal(err)
	}
	out := *bf.out
	if out == "" {
		out = filepath.Dir(path)
	}
	build(heightfield.Mirror(g), *bf.size, out)
}

func build(grids [2][2]*heightfield.Grid, size int, out string) {
	res, err := heightfield.NewBuilder(size).Build(grids)
	if err != nil {
		fatal(err)
	}
	if err := res.Save(out); err != nil {
		fatal(err)
	}
	fmt.Printf("Built:   %s (%dx%d)\n", out, res.Combined.Size, res.Combined.Size)
	for _, q := range heightfield.Quadrants {
		fmt.Printf("  %s\n", filepath.Join(out, q.FileName()))
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hftool info <file.png>")
		os.Exit(1)
	}

	img, err := heightfield.ReadPNG(args[0])
	if err != nil {
		fatal(err)
	}

	lo, hi := uint16(0xFFFF), uint16(0)
	var sum float64
	for py := range img.Size {
		for _, v := range img.Row(py) {
			lo = min(lo, v)
			hi = max(hi, v)
			sum += float64(v)
		}
	}
	n := float64(img.Size * img.Size)

	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("Size:    %dx%d\n", img.Size, img.Size)
	fmt.Printf("Min:     %d\n", lo)
	fmt.Printf("Max:     %d\n", hi)
	fmt.Printf("Mean:    %.1f\n", sum/n)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
