// stagetool is a CLI utility for inspecting, converting and rendering USD
// text stages.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veldrane/stageview/internal/engine/camera"
	"github.com/veldrane/stageview/internal/engine/debug"
	"github.com/veldrane/stageview/internal/engine/framebuffer"
	"github.com/veldrane/stageview/internal/engine/render"
	"github.com/veldrane/stageview/internal/engine/render/immediate"
	"github.com/veldrane/stageview/internal/engine/render/retained"
	"github.com/veldrane/stageview/internal/engine/scene"
	"github.com/veldrane/stageview/internal/engine/window"
	"github.com/veldrane/stageview/internal/logger"
	"github.com/veldrane/stageview/internal/sample"
	"github.com/veldrane/stageview/pkg/stage"
	"github.com/veldrane/stageview/pkg/usda"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// The render path logs through the engine's zap logger.
	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "flatten":
		cmdFlatten(args)
	case "samples":
		cmdSamples(args)
	case "render":
		cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stagetool - USD text stage utility

Usage:
  stagetool <command> [options]

Commands:
  info <file.usda>                Show stage structure
  flatten [-time T] <file.usda>   Print the flattened draw list
  samples [-dir D]                Write the bundled sample stages
  render [options] <file.usda>    Render one frame to an image

Render options:
  -o <path>      Output image, .png or .webp (default render.png)
  -time <T>      Time code to render (default: start of range)
  -width <W>     Image width (default 1280)
  -height <H>    Image height (default 720)

Examples:
  stagetool info scene.usda
  stagetool flatten -time 42 scene.usda
  stagetool samples -dir ./stages
  stagetool render -o frame.webp -width 1920 -height 1080 scene.usda`)
}

func loadStage(path string) *stage.Stage {
	st, err := usda.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return st
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stagetool info <file.usda>")
		os.Exit(1)
	}

	st := loadStage(args[0])

	total := 0
	kindCount := make(map[stage.Kind]int)
	st.Traverse(func(p *stage.Prim) bool {
		total++
		kindCount[p.Kind()]++
		return true
	})

	fmt.Printf("Stage:        %s\n", st.Name())
	if st.DefaultPrim() != "" {
		fmt.Printf("Default prim: %s\n", st.DefaultPrim())
	}
	if st.HasAnimation() {
		fmt.Printf("Time range:   %g..%g at %g codes/s\n",
			st.StartTime(), st.EndTime(), st.TimeCodesPerSecond())
	} else {
		fmt.Printf("Time range:   none\n")
	}
	fmt.Printf("Prims:        %d\n", total)
	fmt.Println()

	st.Traverse(func(p *stage.Prim) bool {
		depth := strings.Count(p.Path(), "/") - 1
		typeName := p.TypeName()
		if typeName == "" {
			typeName = "(typeless)"
		}
		fmt.Printf("  %s%-*s %s\n", strings.Repeat("  ", depth), 32-2*depth, p.Name(), typeName)
		return true
	})
	fmt.Println()

	// Sort kinds by count
	type kindStat struct {
		kind  stage.Kind
		count int
	}
	var stats []kindStat
	for kind, count := range kindCount {
		stats = append(stats, kindStat{kind, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].kind < stats[j].kind
	})

	fmt.Println("Prims by kind:")
	for _, s := range stats {
		fmt.Printf("  %-10s %d\n", s.kind, s.count)
	}
}

func cmdFlatten(args []string) {
	fs := flag.NewFlagSet("flatten", flag.ExitOnError)
	timeCode := fs.Float64("time", math.NaN(), "Time code to evaluate")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stagetool flatten [-time T] <file.usda>")
		os.Exit(1)
	}

	st := loadStage(fs.Arg(0))
	t := *timeCode
	if math.IsNaN(t) {
		t = st.StartTime()
	}

	f := scene.NewFlattener()
	items := 0
	triangles := 0
	f.Flatten(st, t, func(it scene.Item) bool {
		mark := " "
		if it.Cached {
			mark = "*"
		}
		fmt.Printf("%3d%s %-32s %6d tris  color=(%.2f, %.2f, %.2f)  at=(%.2f, %.2f, %.2f)\n",
			items, mark, it.Prim.Path(), it.Geo.TriangleCount(),
			it.Color.X, it.Color.Y, it.Color.Z,
			it.World[12], it.World[13], it.World[14])
		items++
		triangles += it.Geo.TriangleCount()
		return true
	})

	hits, misses := f.Cache.Stats()
	fmt.Printf("\n%d items, %d triangles at t=%g (cache: %d hits, %d misses, * = shared geometry)\n",
		items, triangles, t, hits, misses)
}

func cmdSamples(args []string) {
	fs := flag.NewFlagSet("samples", flag.ExitOnError)
	dir := fs.String("dir", ".", "Output directory")
	fs.Parse(args)

	names := make([]string, 0, len(sample.All()))
	for name := range sample.All() {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := sample.All()[name]()
		path := filepath.Join(*dir, name+".usda")
		if err := usda.Save(st, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}

		prims := 0
		st.Traverse(func(*stage.Prim) bool {
			prims++
			return true
		})
		fmt.Printf("Wrote: %s (%d prims)\n", path, prims)
	}
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "render.png", "Output image (.png or .webp)")
	timeCode := fs.Float64("time", math.NaN(), "Time code to render")
	width := fs.Int("width", 1280, "Image width")
	height := fs.Int("height", 720, "Image height")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stagetool render [options] <file.usda>")
		os.Exit(1)
	}
	if *width < 1 || *height < 1 {
		fmt.Fprintf(os.Stderr, "Bad image size %dx%d\n", *width, *height)
		os.Exit(1)
	}

	st := loadStage(fs.Arg(0))
	t := *timeCode
	if math.IsNaN(t) {
		t = st.StartTime()
	}

	// A hidden window still provides the GL context the offscreen
	// framebuffer needs.
	win, err := window.New(window.Config{
		Title:  "stagetool",
		Width:  *width,
		Height: *height,
		Hidden: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating GL context: %v\n", err)
		os.Exit(1)
	}
	defer win.Close()

	surface, err := immediate.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating draw surface: %v\n", err)
		os.Exit(1)
	}

	var adv render.Advanced
	if r, err := retained.New(); err == nil {
		adv = r
		defer r.Destroy()
	} else {
		fmt.Fprintf(os.Stderr, "Advanced renderer unavailable, using fallback: %v\n", err)
	}

	fb, err := framebuffer.New(int32(*width), int32(*height))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating framebuffer: %v\n", err)
		os.Exit(1)
	}
	defer fb.Destroy()
	fb.Bind()

	disp := render.NewDispatcher(surface, adv)
	cam := camera.NewOrbitCamera()
	if min, max, ok := disp.Bounds(st, t); ok {
		cam.FrameBounds(min, max)
	}

	p := render.DefaultParams()
	p.Time = t
	disp.Frame(st, cam, p, *width, *height)

	pixels := fb.ReadPixels()
	fb.Unbind()

	if err := debug.WriteImage(*out, pixels, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered: %s (%dx%d at t=%g)\n", *out, *width, *height, t)
}
