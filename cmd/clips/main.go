package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/milk9111/menagerie/model"
	"github.com/milk9111/menagerie/prefabs"
)

// clips prints the animation clips of one or more models. Manifests resolve
// through the prefabs directory unless -raw is set.
func main() {
	all := flag.Bool("all", false, "list every model manifest shipped in prefabs/models")
	raw := flag.Bool("raw", false, "read manifests straight from the file system")
	flag.Parse()

	read := prefabs.Load
	if *raw {
		read = os.ReadFile
	}

	paths := flag.Args()
	if *all {
		models, err := prefabs.Models()
		if err != nil {
			log.Fatal(err)
		}
		paths = append(paths, models...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: clips [-raw] [-all] model...")
		os.Exit(2)
	}

	async := model.NewAsync(context.Background(), model.NewDefault(read))
	defer async.Close()

	for _, p := range paths {
		async.Request(p)
	}
	results := make([]model.Result, 0, len(paths))
	for range paths {
		results = append(results, <-async.Results())
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Ticket < results[j].Ticket })

	failed := false
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s: %v", r.Path, r.Err)
			failed = true
			continue
		}
		fmt.Fprintf(tw, "%s\t%d clips\n", r.Path, len(r.Model.Clips))
		for _, c := range r.Model.Clips {
			fmt.Fprintf(tw, "  %s\t%.2fs\tstride %.2f\tbob %.2f\n", c.Name, c.Duration, c.Stride, c.Bob)
		}
	}
	tw.Flush()
	if failed {
		os.Exit(1)
	}
}
