// Package bus implements the bus/message bridge: the three outbound
// operations the MESI controller issues toward peer caches and L1,
// plus the one inbound operation it polls.
package bus

import "github.com/sirupsen/logrus"

// Op is a bus operation issued toward peer caches.
type Op int

const (
	Read Op = iota
	Write
	Invalidate
	RWIM
)

func (o Op) String() string {
	switch o {
	case Read:
		return "BusRd"
	case Write:
		return "BusWr"
	case Invalidate:
		return "BusInvalidate"
	case RWIM:
		return "BusRWIM"
	default:
		return "BusOp?"
	}
}

// SnoopResult is a peer's response to a bus read/RWIM.
type SnoopResult int

const (
	NoHit SnoopResult = iota
	Hit
	HitM
)

func (r SnoopResult) String() string {
	switch r {
	case NoHit:
		return "NOHIT"
	case Hit:
		return "HIT"
	case HitM:
		return "HITM"
	default:
		return "SNOOP?"
	}
}

// Message is an inclusivity signal forwarded to L1.
type Message int

const (
	GetLine Message = iota
	SendLine
	EvictLine
	InvalidateLine
)

func (m Message) String() string {
	switch m {
	case GetLine:
		return "GETLINE"
	case SendLine:
		return "SENDLINE"
	case EvictLine:
		return "EVICTLINE"
	case InvalidateLine:
		return "INVALIDATELINE"
	default:
		return "MSG?"
	}
}

// Bridge is the MESI controller's view of the bus and of L1: three
// synchronous outbound operations and one inbound query, no payload.
type Bridge interface {
	BusOperation(op Op, addr uint64)
	GetSnoopResult(addr uint64) SnoopResult
	PutSnoopResult(addr uint64, result SnoopResult)
	MessageToCache(msg Message, addr uint64)
}

// StubBridge is the simulator's Bridge: it has no real peers, so
// GetSnoopResult is a deterministic stub keyed off the address's two
// least-significant bits, kept isolated behind Bridge so it can later
// be swapped for a recorded oracle. Every call is also logged to
// Verbose at Info level.
type StubBridge struct {
	Verbose *logrus.Logger
}

// NewStubBridge returns a Bridge that logs to verbose.
func NewStubBridge(verbose *logrus.Logger) *StubBridge {
	return &StubBridge{Verbose: verbose}
}

// BusOperation emits a textual record of op at addr.
func (b *StubBridge) BusOperation(op Op, addr uint64) {
	b.Verbose.Infof("%s 0x%x", op, addr)
}

// GetSnoopResult is deterministic on the address's two low bits:
// 00 -> HIT, 01 -> HITM, otherwise NOHIT.
func (b *StubBridge) GetSnoopResult(addr uint64) SnoopResult {
	var result SnoopResult
	switch addr & 0x3 {
	case 0b00:
		result = Hit
	case 0b01:
		result = HitM
	default:
		result = NoHit
	}
	b.Verbose.Infof("GetSnoopResult 0x%x -> %s", addr, result)
	return result
}

// PutSnoopResult announces this cache's snoop response to the bus.
func (b *StubBridge) PutSnoopResult(addr uint64, result SnoopResult) {
	b.Verbose.Infof("PutSnoopResult 0x%x %s", addr, result)
}

// MessageToCache forwards an inclusivity signal to L1.
func (b *StubBridge) MessageToCache(msg Message, addr uint64) {
	b.Verbose.Infof("%s 0x%x", msg, addr)
}
