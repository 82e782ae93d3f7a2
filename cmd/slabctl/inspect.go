package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/slab"
)

func init() {
	cmd := newInspectCmd()
	addWorkloadFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run a workload and print per-slab occupancy",
		Long: `The inspect command runs the same workload as run and then walks the
meta-slab and data-slab chains, printing one line per slab with its stride,
placement and an occupancy bar.

Example:
  slabctl inspect --pages 8 --sizes 20,100,1500 --repeat 10
  slabctl inspect --pages 8 --sizes 20 --repeat 200 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect()
		},
	}
	return cmd
}

// SlabJSON is the JSON form of one slab.
type SlabJSON struct {
	Kind       string   `json:"kind"`
	Descriptor uint64   `json:"descriptor"`
	Start      uint64   `json:"start"`
	Pages      uint32   `json:"pages"`
	Size       uint32   `json:"size"`
	Capacity   int      `json:"capacity"`
	Used       int      `json:"used"`
	FreeSlots  []uint32 `json:"free_slots"`
}

func runInspect() error {
	w, err := openWorkload()
	if err != nil {
		return err
	}
	defer w.Close()

	res := w.run()
	if jsonOut {
		slabs := append(w.al.MetaSlabs(), w.al.Slabs()...)
		out := struct {
			Result WorkloadResult `json:"result"`
			Slabs  []SlabJSON     `json:"slabs"`
		}{Result: res, Slabs: make([]SlabJSON, 0, len(slabs))}
		for _, s := range slabs {
			out.Slabs = append(out.Slabs, slabJSON(s))
		}
		return printJSON(out)
	}

	if quiet {
		return nil
	}
	return w.al.WriteReport(os.Stdout)
}

func slabJSON(s slab.SlabInfo) SlabJSON {
	return SlabJSON{
		Kind:       s.Kind.String(),
		Descriptor: s.Descriptor,
		Start:      s.Start,
		Pages:      s.Pages,
		Size:       s.Size,
		Capacity:   s.Capacity,
		Used:       s.Used(),
		FreeSlots:  s.Free.ToArray(),
	}
}
