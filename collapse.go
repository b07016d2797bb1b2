package hexdump

import "bytes"

// Marker is the line that stands in for a run of duplicate lines.
const Marker = "*"

// Action tells the caller what to do with the chunk passed to Collapser.Step.
type Action uint8

const (
	// ActionEmit means the chunk's line is shown.
	ActionEmit Action = iota
	// ActionMarker means the chunk is suppressed and a Marker line is shown in its place.
	ActionMarker
	// ActionSuppress means the chunk is suppressed and nothing is shown.
	ActionSuppress
)

func (a Action) String() string {
	switch a {
	case ActionEmit:
		return "emit"
	case ActionMarker:
		return "marker"
	case ActionSuppress:
		return "suppress"
	default:
		return "unknown"
	}
}

type collapseState uint8

const (
	stateNormal collapseState = iota
	stateInRun
)

// Collapser detects runs of consecutive chunks with identical bytes. The first chunk of a run
// is emitted, the second is replaced by a Marker and the rest are suppressed. Comparison is on
// raw bytes, never on rendered text.
//
// When duplicates are displayed the Collapser passes every chunk through and keeps no state.
type Collapser struct {
	display bool
	state   collapseState

	recorded    []byte
	hasRecorded bool

	// Last suppressed chunk of the current run.
	lastOffset uint64
	lastLen    int
}

// NewCollapser creates a Collapser. When displayDuplicates is true it is a pass-through.
func NewCollapser(displayDuplicates bool) *Collapser {
	return &Collapser{display: displayDuplicates}
}

// Step feeds the chunk at offset and reports what to show for it. raw is copied when recorded;
// the caller may reuse it after Step returns.
func (c *Collapser) Step(offset uint64, raw []byte) Action {
	if c.display {
		return ActionEmit
	}

	if c.hasRecorded && bytes.Equal(raw, c.recorded) {
		c.lastOffset = offset
		c.lastLen = len(raw)

		if c.state == stateInRun {
			return ActionSuppress
		}

		c.state = stateInRun

		return ActionMarker
	}

	c.recorded = append(c.recorded[:0], raw...)
	c.hasRecorded = true
	c.state = stateNormal

	return ActionEmit
}

// Finish reports the last suppressed chunk when the input ended inside a run of duplicates, so
// the caller can close the dump with its line. ok is false outside a run. Finish leaves the
// run closed; calling it again reports nothing.
func (c *Collapser) Finish() (offset uint64, raw []byte, ok bool) {
	if c.display || c.state != stateInRun {
		return 0, nil, false
	}

	c.state = stateNormal

	return c.lastOffset, c.recorded[:c.lastLen], true
}

// InRun reports whether the last chunk was part of a duplicate run.
func (c *Collapser) InRun() bool {
	return c.state == stateInRun
}

// Recorded returns the bytes duplicates are compared against, or nil before the first chunk.
// The slice is owned by the Collapser and changes on the next Step.
func (c *Collapser) Recorded() []byte {
	if !c.hasRecorded {
		return nil
	}

	return c.recorded
}

// reset clears all state, keeping the recorded buffer's capacity.
func (c *Collapser) reset(displayDuplicates bool) {
	c.display = displayDuplicates
	c.state = stateNormal
	c.recorded = c.recorded[:0]
	c.hasRecorded = false
	c.lastOffset = 0
	c.lastLen = 0
}
