package cleaner

// Stats accumulates the outcome of a cleanup run. A single Stats is created
// by the caller and handed to every clean call; it is not safe for
// concurrent use.
type Stats struct {
	FilesDeleted uint64
	BytesFreed   uint64
	Errors       uint64

	// Reasons breaks Errors down by category; its values always sum to Errors.
	Reasons map[ErrorReason]uint64
}

// Counters is a value snapshot of the three counters of a Stats
type Counters struct {
	FilesDeleted uint64 `json:"files_deleted" yaml:"files_deleted"`
	BytesFreed   uint64 `json:"bytes_freed" yaml:"bytes_freed"`
	Errors       uint64 `json:"errors" yaml:"errors"`
}

// NewStats creates an empty Stats
func NewStats() *Stats {
	return &Stats{
		Reasons: make(map[ErrorReason]uint64),
	}
}

// AddFile records a successful deletion of a file of the given size
func (s *Stats) AddFile(size uint64) {
	s.FilesDeleted++
	s.BytesFreed += size
}

// AddError records a failed deletion
func (s *Stats) AddError(reason ErrorReason) {
	if s.Reasons == nil {
		s.Reasons = make(map[ErrorReason]uint64)
	}
	s.Errors++
	s.Reasons[reason]++
}

// Counters returns the current counter values
func (s *Stats) Counters() Counters {
	return Counters{
		FilesDeleted: s.FilesDeleted,
		BytesFreed:   s.BytesFreed,
		Errors:       s.Errors,
	}
}

// Sub returns the growth of c since before. Counters never decrease, so
// before must be an earlier snapshot of the same Stats.
func (c Counters) Sub(before Counters) Counters {
	return Counters{
		FilesDeleted: c.FilesDeleted - before.FilesDeleted,
		BytesFreed:   c.BytesFreed - before.BytesFreed,
		Errors:       c.Errors - before.Errors,
	}
}
