package shared

import "math"

// MaxStoredInt is the largest quantity or volume the INTEGER columns hold
const MaxStoredInt = math.MaxInt32
