package phy

import "fmt"

// IrqKind names a hardware condition a driver can report while receiving.
// It is also used to tell the driver which condition to wait for.
type IrqKind uint8

const (
	IrqPreambleReceived IrqKind = iota + 1
	IrqHeaderValid
	IrqDone
)

func (k IrqKind) String() string {
	switch k {
	case IrqPreambleReceived:
		return "PreambleReceived"
	case IrqHeaderValid:
		return "HeaderValid"
	case IrqDone:
		return "Done"
	default:
		return fmt.Sprintf("IrqKind(%d)", uint8(k))
	}
}

// PacketStatus carries the raw link figures a driver reads from the chip.
type PacketStatus struct {
	RSSI int16
	SNR  int16
}

// IrqState is the state a driver reached. Length and Status are only set
// for IrqDone.
type IrqState struct {
	Kind   IrqKind
	Length uint8
	Status PacketStatus
}

// Reached builds a state without a received frame.
func Reached(kind IrqKind) IrqState { return IrqState{Kind: kind} }

// Done builds the terminal state of a completed reception.
func Done(length uint8, status PacketStatus) IrqState {
	return IrqState{Kind: IrqDone, Length: length, Status: status}
}

func (s IrqState) IsDone() bool { return s.Kind == IrqDone }

func (s IrqState) String() string {
	if s.IsDone() {
		return fmt.Sprintf("Done(len=%d rssi=%d snr=%d)", s.Length, s.Status.RSSI, s.Status.SNR)
	}
	return s.Kind.String()
}
