// bsptool is a CLI utility for inspecting compiled Source engine maps.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Faultbox/lightsrad/internal/catalog"
	"github.com/Faultbox/lightsrad/internal/radfile"
	"github.com/Faultbox/lightsrad/pkg/bsp"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "lights":
		cmdLights(args)
	case "textures", "tex":
		cmdTextures(args)
	case "catalog":
		cmdCatalog(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bsptool - Source engine map inspection utility

Usage:
  bsptool <command> [options]

Commands:
  info [-all] <map.bsp>         Show header and lump directory
  lights [-hdr] <map.bsp>       List world lights
  textures [-all] <map.bsp>     List light-emitting textures and face counts
  catalog <lights.db>           Print the merged lights.rad from a catalog

Examples:
  bsptool info maps/bhop_bludi.bsp
  bsptool lights -hdr maps/bhop_bludi.bsp
  bsptool catalog lights.db > lights.rad`)
}

func openMap(cmd string, args []string) *bsp.Map {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: bsptool %s <map.bsp>\n", cmd)
		os.Exit(1)
	}

	m, err := bsp.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	all := fs.Bool("all", false, "Show empty lumps too")
	fs.Parse(args)

	m := openMap("info", fs.Args())

	fmt.Printf("Map:      %s\n", fs.Arg(0))
	fmt.Printf("Version:  %d\n", m.Version)
	fmt.Printf("Revision: %d\n", m.MapRevision)
	fmt.Println()
	fmt.Printf("  %-2s  %-34s %10s %10s %4s  %-6s %s\n", "ID", "LUMP", "OFFSET", "LENGTH", "VER", "FOURCC", "")

	for i, l := range m.Lumps {
		if !*all && l.Length == 0 {
			continue
		}
		id := bsp.LumpID(i)

		var notes []string
		if l.Recovered {
			notes = append(notes, "recovered")
		}
		if v := m.Decoded(id); v != nil {
			notes = append(notes, "decoded")
		}
		fmt.Printf("  %2d  %-34s %10d %10d %4d  %-6s %s\n",
			i, id, l.Offset, l.Length, l.Version, fourCC(l.FourCC), strings.Join(notes, ","))
	}
}

func fourCC(code [4]byte) string {
	if code == [4]byte{} {
		return "-"
	}
	return fmt.Sprintf("%08x", code[:])
}

func cmdLights(args []string) {
	fs := flag.NewFlagSet("lights", flag.ExitOnError)
	hdr := fs.Bool("hdr", false, "List HDR world lights")
	fs.Parse(args)

	m := openMap("lights", fs.Args())

	lights := m.WorldLights()
	if *hdr {
		lights = m.WorldLightsHDR()
	}

	byType := make(map[bsp.EmitType]int)
	for i, l := range lights {
		byType[l.Type]++
		fmt.Printf("%5d  %-18s origin (%.1f %.1f %.1f)  intensity (%.3f %.3f %.3f)\n",
			i, l.Type,
			l.Origin.X, l.Origin.Y, l.Origin.Z,
			l.Intensity.X, l.Intensity.Y, l.Intensity.Z)
	}

	fmt.Println()
	fmt.Printf("Total: %d lights\n", len(lights))
	types := make([]bsp.EmitType, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Printf("  %-18s %d\n", t, byType[t])
	}
}

func cmdTextures(args []string) {
	fs := flag.NewFlagSet("textures", flag.ExitOnError)
	all := fs.Bool("all", false, "Include faces without SURF_LIGHT")
	fs.Parse(args)

	m := openMap("textures", fs.Args())

	texInfos := m.TexInfos()
	texData := m.TexData()
	counts := make(map[string]int)

	for fi, face := range m.Faces() {
		if int(face.TexInfo) < 0 || int(face.TexInfo) >= len(texInfos) {
			fmt.Fprintf(os.Stderr, "face %d: bad texinfo %d\n", fi, face.TexInfo)
			continue
		}
		ti := texInfos[face.TexInfo]
		if !*all && !ti.Flags.Has(bsp.SurfLight) {
			continue
		}
		if ti.TexData < 0 || int(ti.TexData) >= len(texData) {
			fmt.Fprintf(os.Stderr, "face %d: bad texdata %d\n", fi, ti.TexData)
			continue
		}
		name, err := m.TextureName(texData[ti.TexData])
		if err != nil {
			fmt.Fprintf(os.Stderr, "face %d: %v\n", fi, err)
			continue
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %-48s %d\n", name, counts[name])
	}
	fmt.Printf("\n%d textures\n", len(names))
}

func cmdCatalog(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bsptool catalog <lights.db>")
		os.Exit(1)
	}

	if _, err := os.Stat(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Open(args[0], nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	textures, err := cat.Textures()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, t := range textures {
		fmt.Println(radfile.Line(t.TextureLight()))
	}
}
