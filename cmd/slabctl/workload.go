package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/mmfile"
	"github.com/joshuapare/slabkit/slab"
)

// Workload flags shared by run and inspect.
var (
	wlPages     int
	wlPageSize  int
	wlAlignment int
	wlMinShift  uint
	wlMaxShift  uint
	wlSpanCap   int
	wlSizes     []int
	wlRepeat    int
	wlFreeEvery int
)

func addGeometryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&wlPageSize, "page-size", mmfile.PageSize(), "Slab page size in bytes")
	cmd.Flags().IntVar(&wlAlignment, "alignment", slab.DefaultConfig.Alignment, "Slab placement alignment")
	cmd.Flags().UintVar(&wlMinShift, "min-shift", slab.DefaultConfig.MinShift, "Smallest class is 1<<min-shift bytes")
	cmd.Flags().UintVar(&wlMaxShift, "max-shift", slab.DefaultConfig.MaxShift, "Largest class is 1<<max-shift bytes")
	cmd.Flags().IntVar(&wlSpanCap, "max-span-blocks", 0, "Cap on max-class blocks per spanning request (0 = no cap)")
}

func addWorkloadFlags(cmd *cobra.Command) {
	addGeometryFlags(cmd)
	cmd.Flags().IntVar(&wlPages, "pages", 16, "Arena size in pages")
	cmd.Flags().IntSliceVar(&wlSizes, "sizes", []int{20}, "Comma-separated request sizes, allocated in order")
	cmd.Flags().IntVar(&wlRepeat, "repeat", 1, "Number of passes over --sizes")
	cmd.Flags().IntVar(&wlFreeEvery, "free-every", 0, "Free the newest live block after every K allocations (0 = never)")
}

func workloadConfig() *slab.Config {
	cfg := &slab.Config{
		PageSize:      wlPageSize,
		Alignment:     wlAlignment,
		MinShift:      wlMinShift,
		MaxShift:      wlMaxShift,
		MaxSpanBlocks: wlSpanCap,
	}
	if verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cfg
}

// WorkloadResult summarizes one workload run.
type WorkloadResult struct {
	Requests   int        `json:"requests"`
	Allocated  int        `json:"allocated"`
	Freed      int        `json:"freed"`
	Exhausted  int        `json:"exhausted"`
	Rejected   int        `json:"rejected"`
	FirstError string     `json:"first_error,omitempty"`
	Stats      slab.Stats `json:"stats"`
}

// workload owns the mapping and the allocator built over it.
type workload struct {
	al      *slab.Allocator
	release func() error
}

func openWorkload() (*workload, error) {
	if wlPages <= 0 {
		return nil, fmt.Errorf("--pages must be positive, got %d", wlPages)
	}
	cfg := workloadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := wlPages * wlPageSize
	printVerbose("Mapping %d bytes (%d pages of %d)\n", size, wlPages, wlPageSize)
	mem, release, err := mmfile.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("failed to map arena: %w", err)
	}

	al, err := slab.New(mem, cfg)
	if err != nil {
		_ = release()
		return nil, fmt.Errorf("failed to initialize allocator: %w", err)
	}
	return &workload{al: al, release: release}, nil
}

// Close drops the allocator before unmapping its buffer.
func (w *workload) Close() error {
	w.al.Deinit()
	return w.release()
}

// run replays the configured sizes. Exhaustion and invalid sizes are counted,
// not fatal: the point is to observe where the arena gives out.
func (w *workload) run() WorkloadResult {
	var res WorkloadResult
	live := make([]slab.Block, 0, len(wlSizes)*wlRepeat)

	for pass := 0; pass < wlRepeat; pass++ {
		for _, size := range wlSizes {
			res.Requests++
			b, err := w.al.Allocate(size)
			if err != nil {
				switch {
				case slab.IsExhausted(err):
					res.Exhausted++
				case errors.Is(err, slab.ErrInvalidSize):
					res.Rejected++
				}
				if res.FirstError == "" {
					res.FirstError = err.Error()
				}
				printVerbose("Allocate(%d): %v\n", size, err)
				continue
			}
			res.Allocated++
			live = append(live, b)
			printVerbose("Allocate(%d) -> offset %d class %d\n", size, b.Off, b.Class)

			if wlFreeEvery > 0 && res.Allocated%wlFreeEvery == 0 {
				last := live[len(live)-1]
				live = live[:len(live)-1]
				if err := w.al.Free(last); err != nil {
					// Can only happen if the allocator is corrupted.
					panic(fmt.Sprintf("free of issued block at %d failed: %v", last.Off, err))
				}
				res.Freed++
			}
		}
	}

	res.Stats = w.al.Stats()
	return res
}
