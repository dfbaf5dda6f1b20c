// objtool is a CLI utility for inspecting Wavefront OBJ meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/carousel/pkg/formats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(rest, stdout)
	case "validate", "check":
		err = cmdValidate(rest, stdout)
	case "bounds":
		err = cmdBounds(rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objtool - Wavefront OBJ mesh utility

Usage:
  objtool <command> [options] <file.obj>...

Commands:
  info <file.obj>...       Show vertex, triangle and skipped line counts
  validate <file.obj>...   Check that every face index is in range
  bounds <file.obj>...     Print the axis-aligned bounding box

Examples:
  objtool info models/ring.obj
  objtool validate models/*.obj
  objtool bounds -center models/ball_01.obj`)
}

func cmdInfo(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: objtool info <file.obj>...")
	}

	for _, path := range args {
		obj, err := formats.LoadOBJ(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", path)
		fmt.Fprintf(w, "  Vertices:  %d\n", obj.VertexCount())
		fmt.Fprintf(w, "  Triangles: %d\n", obj.TriangleCount())
		fmt.Fprintf(w, "  Skipped:   %d\n", obj.Skipped)
	}
	return nil
}

func cmdValidate(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: objtool validate <file.obj>...")
	}

	failed := 0
	for _, path := range args {
		obj, err := formats.LoadOBJ(path)
		if err == nil {
			err = obj.Validate()
		}
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(args))
	}
	return nil
}

func cmdBounds(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("bounds", flag.ContinueOnError)
	fs.SetOutput(w)
	center := fs.Bool("center", false, "Also print the box center")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: objtool bounds [-center] <file.obj>...")
	}

	for _, path := range fs.Args() {
		obj, err := formats.LoadOBJ(path)
		if err != nil {
			return err
		}
		lo, hi := obj.Bounds()
		fmt.Fprintf(w, "%s min=(%g, %g, %g) max=(%g, %g, %g)\n",
			path, lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
		if *center {
			fmt.Fprintf(w, "  center=(%g, %g, %g)\n",
				(lo[0]+hi[0])/2, (lo[1]+hi[1])/2, (lo[2]+hi[2])/2)
		}
	}
	return nil
}
