// Command jp2info prints the structural metadata of JPEG 2000 files without
// decoding any pixel data.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cocosip/go-jpeg2000-metadata/jpeg2000"
	"github.com/cocosip/go-jpeg2000-metadata/stream"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] file...\n", os.Args[0])
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	exit := 0
	for _, path := range flag.Args() {
		if err := printInfo(path, logger); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func printInfo(path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := stream.New(f)
	if err != nil {
		return err
	}
	md, err := jpeg2000.ParseMetadataWithLogger(r, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	if md.RawCodestream {
		fmt.Println("  format: raw codestream")
	} else {
		fmt.Println("  format: JP2 container")
	}
	printGeometry("header", md.HeaderSizeX, md.HeaderSizeY, md.HeaderChannels, md.HeaderPixelType)
	printGeometry("codestream", md.CodestreamSizeX, md.CodestreamSizeY, md.CodestreamChannels, md.CodestreamPixelType)
	if md.ResolutionLevels != nil {
		fmt.Printf("  resolution levels: %d\n", *md.ResolutionLevels)
	}
	return nil
}

func printGeometry(label string, x, y *uint32, channels *uint16, pt *jpeg2000.PixelType) {
	if x == nil && y == nil && channels == nil && pt == nil {
		return
	}
	fmt.Printf("  %s:", label)
	if x != nil && y != nil {
		fmt.Printf(" %dx%d", *x, *y)
	}
	if channels != nil {
		fmt.Printf(" channels=%d", *channels)
	}
	if pt != nil {
		fmt.Printf(" pixel=%s", pt.String())
	}
	fmt.Println()
}
