package pingpong

// Channel identifies one side of the stereo pair.
type Channel int

// Stereo channels.
const (
	Left Channel = iota
	Right
)

// Opposite returns the other channel.
func (c Channel) Opposite() Channel {
	return 1 - c
}

func (c Channel) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Routing says where one sample's echo comes from and where it goes.
type Routing struct {
	// Destination is the output channel that receives the wet mix.
	// The other output channel is left dry.
	Destination Channel
	// Source is the delay line the echo is read from.
	Source Channel
}

// Route returns the routing for the sample at index within its block.
//
// The choice is keyed on the parity of index alone, so it toggles on every
// sample and restarts with each block.
func Route(index int) Routing {
	if index%2 == 0 {
		return Routing{Destination: Left, Source: Right}
	}
	return Routing{Destination: Right, Source: Left}
}
