package model

// TimelineEntry records what occupied the CPU during one time unit.
// Idle units have Idle set and PID zero.
type TimelineEntry struct {
	Time int  `json:"time"`
	PID  int  `json:"pid,omitempty"`
	Idle bool `json:"idle,omitempty"`
}

// Block is a run of consecutive timeline units with the same occupant,
// covering [Start, End).
type Block struct {
	PID   int  `json:"pid,omitempty"`
	Idle  bool `json:"idle,omitempty"`
	Start int  `json:"start"`
	End   int  `json:"end"`
}

// Len returns the number of time units covered by the block.
func (b Block) Len() int {
	return b.End - b.Start
}
