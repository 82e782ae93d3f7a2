package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := newRunCmd()
	addWorkloadFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an allocation workload and print arena statistics",
		Long: `The run command maps an anonymous arena, replays the requested sizes
against a fresh allocator and prints the resulting counters and watermarks.

Example:
  slabctl run --pages 4 --sizes 20
  slabctl run --pages 4 --sizes 32,64,128,256
  slabctl run --pages 64 --sizes 20,20,1500 --repeat 100 --free-every 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun()
		},
	}
	return cmd
}

func runRun() error {
	w, err := openWorkload()
	if err != nil {
		return err
	}
	defer w.Close()

	res := w.run()
	if jsonOut {
		return printJSON(res)
	}
	printWorkloadResult(res)
	return nil
}

func printWorkloadResult(res WorkloadResult) {
	st := res.Stats
	printInfo("Requests:    %d (%d allocated, %d freed, %d exhausted, %d rejected)\n",
		res.Requests, res.Allocated, res.Freed, res.Exhausted, res.Rejected)
	printInfo("State:       %s\n", st.State)
	printInfo("Arena:       %d bytes, page %d\n", st.ArenaSize, st.PageSize)
	printInfo("Watermarks:  left %d, right %d, gap %d\n", st.LeftOffset, st.RightOffset, st.FreeBytes)
	printInfo("Slabs:       %d meta, %d data, %d span\n", st.MetaSlabs, st.DataSlabs, st.SpanSlabs)
	printInfo("Live blocks: %d\n", st.LiveBlocks)
	if res.FirstError != "" {
		printInfo("First error: %s\n", res.FirstError)
	}
}
