package core

// MaxDeltaTime is the ceiling, in seconds, applied to a single frame delta.
// Debugger breaks and window drags otherwise hand the simulation one huge step.
const MaxDeltaTime float64 = 0.1

// TimeSource returns a monotonic timestamp in seconds.
type TimeSource func() float64

type Clock struct {
	now      TimeSource
	lastTime float64
}

func NewClock(source TimeSource) *Clock {
	return &Clock{now: source}
}

// Tick returns the seconds elapsed since the previous call, clamped to
// MaxDeltaTime. The first call only records the time and returns 0.
func (c *Clock) Tick() float64 {
	currentTime := c.now()

	if c.lastTime == 0 {
		c.lastTime = currentTime
		return 0
	}

	rawDelta := currentTime - c.lastTime
	c.lastTime = currentTime

	if rawDelta > MaxDeltaTime {
		LogDebugOp("Engine", "Tick", "deltaTime clamped to %f (was %f)", MaxDeltaTime, rawDelta)
		return MaxDeltaTime
	}
	return rawDelta
}
