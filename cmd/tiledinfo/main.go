package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/tiledmap/config"
	"github.com/milk9111/tiledmap/maps"
	"github.com/milk9111/tiledmap/watch"
)

func main() {
	configPath := flag.String("config", "", "optional YAML loader config")
	policy := flag.String("policy", "", "image failure policy: lenient or strict (overrides config)")
	workers := flag.Int("workers", 0, "tileset images to load in parallel (overrides config)")
	quiet := flag.Bool("quiet", false, "do not log per-image failures")
	watchFiles := flag.Bool("watch", false, "reload the map when it or its images change")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tiledinfo [flags] map.json")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *quiet {
		cfg.Quiet = true
	}

	loader := maps.NewLoader()
	if err := cfg.Apply(loader); err != nil {
		log.Fatal(err)
	}

	m, err := loader.LoadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	summarize(os.Stdout, path, m)

	if !*watchFiles {
		complete := m.Complete()
		loader.Unload(m)
		if !complete {
			os.Exit(1)
		}
		return
	}

	dirs := []string{filepath.Dir(path)}
	for _, ts := range m.Tilesets {
		ref := ts.Reference()
		if ref == "" {
			continue
		}
		dir := filepath.Dir(maps.Basedir(path) + ref)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	w, err := watch.New(cfg.WatchDebounce, dirs...)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				loader.Unload(m)
				return
			}
			log.Printf("tiledinfo: %s changed, reloading", name)
			next, err := loader.LoadFile(path)
			if err != nil {
				log.Printf("tiledinfo: reload: %v", err)
				continue
			}
			loader.Unload(m)
			m = next
			summarize(os.Stdout, path, m)
		case err, ok := <-w.Errors:
			if ok {
				log.Printf("tiledinfo: watch: %v", err)
			}
		case <-interrupt:
			loader.Unload(m)
			return
		}
	}
}

func summarize(w io.Writer, path string, m *maps.Map) {
	fmt.Fprintf(w, "%s: %dx%d tiles of %dx%d, %d layers, %d tilesets\n",
		path, m.Width, m.Height, m.TileWidth, m.TileHeight, len(m.Layers), len(m.Tilesets))
	for i, ts := range m.Tilesets {
		switch {
		case ts.Loaded != nil:
			b := ts.Loaded.Bounds()
			fmt.Fprintf(w, "  [%d] %s firstgid=%d image=%s (%dx%d)\n", i, ts.Name, ts.FirstGID, ts.Reference(), b.Dx(), b.Dy())
		case ts.Reference() == "":
			fmt.Fprintf(w, "  [%d] %s firstgid=%d no image\n", i, ts.Name, ts.FirstGID)
		default:
			fmt.Fprintf(w, "  [%d] %s firstgid=%d image=%s MISSING\n", i, ts.Name, ts.FirstGID, ts.Reference())
		}
	}
	for _, f := range m.Failures {
		fmt.Fprintf(w, "  failure: %v\n", f)
	}
}
