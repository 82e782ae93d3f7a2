package slab

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// occupancyWidth is the number of cells in a report's occupancy bar.
const occupancyWidth = 32

// WriteReport renders a plain-text summary of the arena followed by one line
// per slab: kind, stride, placement, used/capacity and an occupancy bar
// ('#' occupied, '.' free, one cell per slot or per bucket of slots).
func (al *Allocator) WriteReport(w io.Writer) error {
	p := message.NewPrinter(language.English)
	st := al.Stats()
	if _, err := p.Fprintf(w, "arena: %d bytes, page %d, state %s\n",
		st.ArenaSize, st.PageSize, st.State); err != nil {
		return err
	}
	if st.State == StateClosed || st.State == StateUninitialized {
		return nil
	}
	if _, err := p.Fprintf(w, "watermarks: left %d, right %d, gap %d\n",
		st.LeftOffset, st.RightOffset, st.FreeBytes); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "slabs: %d meta, %d data, %d span; %d live blocks\n",
		st.MetaSlabs, st.DataSlabs, st.SpanSlabs, st.LiveBlocks); err != nil {
		return err
	}

	slabs := append(al.MetaSlabs(), al.Slabs()...)
	for i, s := range slabs {
		if _, err := p.Fprintf(w, "%3d %-4s stride %6d at %10d pages %3d used %5d/%-5d %s\n",
			i, s.Kind, s.Size, s.Start, s.Pages, s.Used(), s.Capacity, occupancyBar(s)); err != nil {
			return err
		}
	}
	return nil
}

// occupancyBar marks a bucket '#' when any slot in it is occupied.
func occupancyBar(s SlabInfo) string {
	cells := occupancyWidth
	if s.Capacity < cells {
		cells = s.Capacity
	}
	var sb strings.Builder
	sb.Grow(cells + 2)
	sb.WriteByte('[')
	for c := 0; c < cells; c++ {
		lo := c * s.Capacity / cells
		hi := (c + 1) * s.Capacity / cells
		mark := byte('.')
		for i := lo; i < hi; i++ {
			if s.Occupied(i) {
				mark = '#'
				break
			}
		}
		sb.WriteByte(mark)
	}
	sb.WriteByte(']')
	return sb.String()
}
