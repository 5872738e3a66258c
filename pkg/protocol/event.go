package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

// EventKind identifies the payload of an event.
type EventKind uint8

const (
	EventClick  EventKind = 0x01
	EventInput  EventKind = 0x10
	EventCustom EventKind = 0xFF // Opaque payload for application views
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventInput:
		return "input"
	case EventCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "click":
		return EventClick, nil
	case "input":
		return EventInput, nil
	case "custom":
		return EventCustom, nil
	}
	return 0, fmt.Errorf("protocol: unknown event kind %q", s)
}

// ErrInvalidEventKind is returned when decoding an unknown event kind.
var ErrInvalidEventKind = errors.New("protocol: invalid event kind")

// Event is a message addressed to the view at Path.
//
// Wire format:
//
//	[Seq: varint][Kind: 1 byte][Path][Value or Payload: len-prefixed]
//
// Click carries nothing after the path.
type Event struct {
	Seq     uint64
	Kind    EventKind
	Path    view.Path
	Value   string // EventInput
	Payload []byte // EventCustom
}

// Custom is the message an EventCustom decodes to.
type Custom struct {
	Payload []byte
}

// Message converts the event into the message the target view expects.
func (e *Event) Message() view.Message {
	switch e.Kind {
	case EventClick:
		return vdom.Click{}
	case EventInput:
		return vdom.InputEvent{Value: e.Value}
	default:
		return Custom{Payload: e.Payload}
	}
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WriteByte(byte(ev.Kind))
	e.WritePath(ev.Path)
	switch ev.Kind {
	case EventInput:
		e.WriteString(ev.Value)
	case EventCustom:
		e.WriteLenBytes(ev.Payload)
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	kb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ev := &Event{Seq: seq, Kind: EventKind(kb)}
	if ev.Path, err = d.ReadPath(); err != nil {
		return nil, err
	}
	switch ev.Kind {
	case EventClick:
	case EventInput:
		if ev.Value, err = d.ReadString(); err != nil {
			return nil, err
		}
	case EventCustom:
		if ev.Payload, err = d.ReadLenBytes(); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidEventKind
	}
	return ev, nil
}

// EventFrame wraps an encoded event in a frame.
func EventFrame(ev *Event) *Frame {
	return NewFrame(FrameEvent, EncodeEvent(ev))
}
