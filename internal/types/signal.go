package types

import (
	"fmt"
	"slices"
)

// Signal is the desired position at a bar: short, flat or long.
type Signal int8

const (
	SignalShort Signal = -1
	SignalFlat  Signal = 0
	SignalLong  Signal = 1
)

func (s Signal) String() string {
	switch s {
	case SignalShort:
		return "short"
	case SignalFlat:
		return "flat"
	case SignalLong:
		return "long"
	default:
		return fmt.Sprintf("signal(%d)", int8(s))
	}
}

// SignalDomain is the set of signal values a strategy may emit.
type SignalDomain []Signal

var (
	// DomainLongShort is used by strategies that are always in the market once defined.
	DomainLongShort = SignalDomain{SignalShort, SignalFlat, SignalLong}
	// DomainLongFlat is used by strategies that never ask for a short position.
	DomainLongFlat = SignalDomain{SignalFlat, SignalLong}
)

// Contains reports whether s is a member of the domain.
func (d SignalDomain) Contains(s Signal) bool {
	return slices.Contains(d, s)
}

// SignalMode selects what a binary rule emits on its "else" branch.
type SignalMode string

const (
	// SignalModeLongShort emits -1 when the long condition does not hold.
	SignalModeLongShort SignalMode = "long_short"
	// SignalModeLongFlat emits 0 when the long condition does not hold.
	SignalModeLongFlat SignalMode = "long_flat"
)

// Otherwise returns the signal emitted when a binary rule's long condition is false.
func (m SignalMode) Otherwise() Signal {
	if m == SignalModeLongFlat {
		return SignalFlat
	}

	return SignalShort
}

// Domain returns the signal domain of a binary rule in this mode.
func (m SignalMode) Domain() SignalDomain {
	if m == SignalModeLongFlat {
		return DomainLongFlat
	}

	return DomainLongShort
}

// PositionDeltas returns signal[t] - signal[t-1] for every bar, with the signal before
// the first bar taken as flat.
func PositionDeltas(signals []Signal) []int {
	deltas := make([]int, len(signals))
	prev := SignalFlat

	for i, s := range signals {
		deltas[i] = int(s) - int(prev)
		prev = s
	}

	return deltas
}
