package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/goopsie/upkfile/pkg/upk"
)

// extractResult is one file's outcome, indexed so results can be printed
// in input order even though workers finish out of order.
type extractResult struct {
	index int
	path  string
	pkg   *upk.Package
	err   error
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Load multiple packages concurrently and report their table counts",
	Long: `extract is the only subcommand that loads more than one package at a
time: each file gets its own worker out of a pool sized to the host's CPU
count, matching the goroutine fan-out the teacher's own extraction loop
used for per-frame decompression work. Package.Load itself stays
single-threaded; concurrency lives here, at the CLI layer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		numWorkers := runtime.NumCPU()
		if numWorkers > len(args) {
			numWorkers = len(args)
		}

		jobs := make(chan int, numWorkers*2)
		results := make([]extractResult, len(args))
		var wg sync.WaitGroup

		worker := func() {
			defer wg.Done()
			for i := range jobs {
				pkg, err := loadPackage(args[i], allPhases())
				results[i] = extractResult{index: i, path: args[i], pkg: pkg, err: err}
			}
		}

		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go worker()
		}
		for i := range args {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		failed := 0
		for _, r := range results {
			if r.err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.path, r.err)
				failed++
				continue
			}
			fmt.Printf("%s: names=%d imports=%d exports=%d\n",
				r.path, len(r.pkg.Names), len(r.pkg.Imports), len(r.pkg.Exports))
		}
		if failed > 0 {
			return fmt.Errorf("extract: %d of %d file(s) failed to load", failed, len(args))
		}
		return nil
	},
}
