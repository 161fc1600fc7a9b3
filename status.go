package latchan

// Status is the result of a non-blocking try-operation. It is always a
// value, never an error or a panic: the hot path never unwinds.
type Status uint8

const (
	// StatusSuccess means the operation completed.
	StatusSuccess Status = iota
	// StatusChannelFull means TrySend found the ring full under WaitOnFull.
	StatusChannelFull
	// StatusChannelEmpty means TryReceive found nothing to read.
	StatusChannelEmpty
	// StatusSkipDueToOverwrite means the slot TryReceive attempted to read
	// was reclaimed by a concurrent OverwriteOnFull send before the read
	// could be validated.
	StatusSkipDueToOverwrite
	// StatusReceiverClosed means a one-shot value was already received.
	StatusReceiverClosed
	// StatusSenderClosed means a one-shot value was already sent.
	StatusSenderClosed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusChannelFull:
		return "ChannelFull"
	case StatusChannelEmpty:
		return "ChannelEmpty"
	case StatusSkipDueToOverwrite:
		return "SkipDueToOverwrite"
	case StatusReceiverClosed:
		return "ReceiverClosed"
	case StatusSenderClosed:
		return "SenderClosed"
	default:
		return "Unknown"
	}
}

// Overflow selects SPSC behavior when the ring is full.
type Overflow uint8

const (
	// WaitOnFull makes TrySend return StatusChannelFull when the ring is
	// full, and blocking Send retry under the wait strategy.
	WaitOnFull Overflow = iota
	// OverwriteOnFull makes Send advance the receive cursor by one slot
	// instead of failing, overwriting the oldest unread element. Requires
	// the Spin wait strategy.
	OverwriteOnFull
)

func (o Overflow) String() string {
	switch o {
	case WaitOnFull:
		return "WaitOnFull"
	case OverwriteOnFull:
		return "OverwriteOnFull"
	default:
		return "Unknown"
	}
}
