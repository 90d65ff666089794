// Command factioncheck validates an exported faction JSON file. It runs the
// same normalization the app applies on import, reports what would load and
// can rewrite the file in the current shape so legacy single-point exports
// get upgraded once instead of on every import.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kamenice-rp/factionmap/internal/faction"
)

func main() {
	write := flag.Bool("write", false, "rewrite the file normalized to the current shape")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: factioncheck [-write] <export.json>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		os.Exit(1)
	}

	store := faction.NewStore()
	if err := faction.Import(store, data); err != nil {
		fmt.Fprintf(os.Stderr, "invalid export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d factions, %d categories\n", path, len(store.Factions), len(store.Categories))

	problems := 0
	for _, f := range store.Factions {
		if len(f.Markers) == 0 {
			fmt.Printf("  ! %q has no markers and will never show on the map\n", f.Name)
			problems++
		}
		if store.CategoryName(f.Category) == "—" {
			fmt.Printf("  ! %q references unknown category %q\n", f.Name, f.Category)
			problems++
		}
	}
	if problems == 0 {
		fmt.Println("  ok")
	}

	if *write {
		out, err := faction.Export(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "serializing: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("  rewrote %s normalized\n", path)
	}
}
