// meshconv is a CLI utility for converting binary STL files to glTF.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshconv/pkg/convert"
	"github.com/Faultbox/meshconv/pkg/formats"
	"github.com/Faultbox/meshconv/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert", "c":
		cmdConvert(args)
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
	fmt.Println(`meshconv - STL to glTF conversion utility

Usage:
  meshconv <command> [options]

Commands:
  convert <file.stl> [options]  Convert an STL file to glTF or GLB
  info <file.stl>               Show mesh statistics for an STL file

Convert options:
  -format gltf|glb     Output container (default glb)
  -method custom|library
                       Conversion strategy (default custom)
  -o <dir>             Output directory (default: alongside input)

Examples:
  meshconv convert part.stl
  meshconv convert part.stl -format gltf -o ./out
  meshconv info part.stl`)
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	format := fs.String("format", "glb", "Output format: gltf or glb")
	method := fs.String("method", "custom", "Conversion strategy: custom or library")
	outDir := fs.String("o", "", "Output directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshconv convert <file.stl> [options]")
		os.Exit(1)
	}

	inPath := fs.Arg(0)
	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(inPath)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	mode := convert.ModeGLB
	if *format == "gltf" {
		mode = convert.ModeSplit
	} else if *format != "glb" {
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}

	var res *convert.Result
	switch *method {
	case "custom":
		res, err = convert.Convert(data, convert.Options{Mode: mode, BinaryURI: base + ".bin"})
	case "library":
		res, err = convert.ConvertLibrary(data, convert.Options{Mode: mode})
	default:
		fmt.Fprintf(os.Stderr, "Unknown method: %s\n", *method)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		os.Exit(1)
	}

	if res.GLB != nil {
		writeOutput(filepath.Join(dir, base+".glb"), res.GLB)
		return
	}
	writeOutput(filepath.Join(dir, base+".gltf"), res.JSON)
	if res.Bin != nil {
		writeOutput(filepath.Join(dir, base+".bin"), res.Bin)
	}
}

func writeOutput(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote: %s (%d bytes)\n", path, len(data))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshconv info <file.stl>")
		os.Exit(1)
	}

	stl, err := formats.ParseSTLFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := mesh.Weld(stl.Facets)
	layout := mesh.LayoutFor(m)

	fmt.Printf("File:            %s\n", fs.Arg(0))
	fmt.Printf("Facets:          %d\n", stl.FacetCount)
	fmt.Printf("Unique vertices: %d\n", len(m.Vertices))
	fmt.Printf("Indices:         %d\n", len(m.Indices))
	fmt.Printf("Packed size:     %d bytes\n", layout.Total)

	if m.Bounds != nil {
		size := m.Bounds.Max.Sub(m.Bounds.Min)
		fmt.Printf("Bounds min:      (%g, %g, %g)\n", m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z)
		fmt.Printf("Bounds max:      (%g, %g, %g)\n", m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
		fmt.Printf("Dimensions:      %g x %g x %g\n", size.X, size.Y, size.Z)
	}
}
