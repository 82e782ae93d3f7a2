package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/slab"
)

var classesFor []int

func init() {
	cmd := newClassesCmd()
	addGeometryFlags(cmd)
	cmd.Flags().IntSliceVar(&classesFor, "for", nil, "Also show the class selected for these request sizes")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Print the size-class ladder for a configuration",
		Long: `The classes command prints the power-of-two size classes for the given
geometry and, with --for, the class each request size would be served from.

Example:
  slabctl classes
  slabctl classes --min-shift 4 --max-shift 11 --page-size 8192
  slabctl classes --for 1,33,1025,5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
	return cmd
}

// ClassJSON is the JSON form of one size selection.
type ClassJSON struct {
	Request int    `json:"request"`
	Class   uint32 `json:"class,omitempty"`
	Blocks  int    `json:"blocks,omitempty"`
	Pages   uint32 `json:"pages,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runClasses() error {
	cfg := workloadConfig()
	// Two pages: the meta slab plus one page to spare.
	al, err := slab.New(make([]byte, 2*cfg.PageSize), cfg)
	if err != nil {
		return err
	}
	defer al.Deinit()

	ladder := al.Classes()
	selections := make([]ClassJSON, 0, len(classesFor))
	for _, n := range classesFor {
		sel := ClassJSON{Request: n}
		cls, err := al.SelectClass(n)
		if err != nil {
			sel.Error = err.Error()
		} else {
			sel.Class, sel.Blocks, sel.Pages = cls.Size, cls.Blocks, cls.Pages
		}
		selections = append(selections, sel)
	}

	if jsonOut {
		return printJSON(struct {
			Classes    []uint32    `json:"classes"`
			Selections []ClassJSON `json:"selections,omitempty"`
		}{ladder, selections})
	}

	printInfo("Classes:")
	for _, c := range ladder {
		printInfo(" %d", c)
	}
	printInfo("\n")
	for _, sel := range selections {
		if sel.Error != "" {
			printInfo("%8d -> %s\n", sel.Request, sel.Error)
			continue
		}
		printInfo("%8d -> class %d (%d block(s), %d page(s))\n", sel.Request, sel.Class, sel.Blocks, sel.Pages)
	}
	return nil
}
