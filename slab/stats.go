package slab

// Stats is a point-in-time snapshot of arena geometry and allocator counters.
type Stats struct {
	State State

	ArenaSize   uint64
	PageSize    uint64
	LeftOffset  uint64 // metadata watermark
	RightOffset uint64 // data watermark
	FreeBytes   uint64 // gap between the watermarks

	MetaSlabs   int
	DataSlabs   int
	SpanSlabs   int
	Descriptors int

	AllocCalls   int
	AllocFailed  int
	SlowPath     int
	FreeCalls    int
	FreeRejected int
	LiveBlocks   int
}

// Stats returns the current counters. After Deinit only State is set.
func (al *Allocator) Stats() Stats {
	st := Stats{State: al.State()}
	if al.usable() != nil {
		return st
	}
	a := al.arena
	st.ArenaSize = a.length
	st.PageSize = a.pageSize
	st.LeftOffset = a.left
	st.RightOffset = a.right
	st.FreeBytes = a.right - a.left

	s := al.stats
	st.MetaSlabs = s.MetaSlabs
	st.DataSlabs = s.DataSlabs
	st.SpanSlabs = s.SpanSlabs
	st.Descriptors = s.Descriptors
	st.AllocCalls = s.AllocCalls
	st.AllocFailed = s.AllocFailed
	st.SlowPath = s.SlowPath
	st.FreeCalls = s.FreeCalls
	st.FreeRejected = s.FreeRejected
	st.LiveBlocks = s.LiveBlocks
	return st
}
