package segment

// State is the segmenter's position relative to record structure.
type State int

const (
	StateStart   State = iota // before the first tag block
	StateInTags               // inside a tag block
	StateInMoves              // inside a movetext block
	StateEnded                // terminal; every later call reports the end
	numStates
)

var stateNames = [...]string{
	StateStart:   "start",
	StateInTags:  "tags",
	StateInMoves: "moves",
	StateEnded:   "ended",
}

// String returns the state name.
func (s State) String() string {
	if s >= 0 && s < numStates {
		return stateNames[s]
	}
	return "unknown"
}

// input classifies what the line source produced.
type input int

const (
	blankLine input = iota
	tagLine
	moveLine
	endOfInput
	numInputs
)

// action is what the segmenter does with an input in a given state.
type action int

const (
	ignore           action = iota
	addTag                  // append the tag to the current record
	startMoves              // first movetext line of the current record
	appendMoves             // further movetext line
	finalizeAndStash        // close the current record, the tag starts the next one
	finalizeAndEnd          // close the current record at end of input
	truncated               // end of input inside a tag block
	unexpectedLine          // movetext where no line is expected
	finish                  // clean end of input
)

type step struct {
	act  action
	next State
}

// transitions is total over State x input; I/O errors are handled
// before classification and always end the stream.
var transitions = [numStates][numInputs]step{
	StateStart: {
		blankLine:  {ignore, StateStart},
		tagLine:    {addTag, StateInTags},
		moveLine:   {unexpectedLine, StateEnded},
		endOfInput: {finish, StateEnded},
	},
	StateInTags: {
		blankLine:  {ignore, StateInTags},
		tagLine:    {addTag, StateInTags},
		moveLine:   {startMoves, StateInMoves},
		endOfInput: {truncated, StateEnded},
	},
	StateInMoves: {
		blankLine:  {ignore, StateInMoves},
		tagLine:    {finalizeAndStash, StateInTags},
		moveLine:   {appendMoves, StateInMoves},
		endOfInput: {finalizeAndEnd, StateEnded},
	},
	StateEnded: {
		blankLine:  {finish, StateEnded},
		tagLine:    {finish, StateEnded},
		moveLine:   {finish, StateEnded},
		endOfInput: {finish, StateEnded},
	},
}

func transition(s State, in input) step {
	return transitions[s][in]
}
