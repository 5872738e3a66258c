package protocol

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

func TestEventRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		msg   view.Message
	}{
		{
			name:  "click",
			event: Event{Seq: 1, Kind: EventClick, Path: view.Path{0, 2}},
			msg:   vdom.Click{},
		},
		{
			name:  "input",
			event: Event{Seq: 300, Kind: EventInput, Path: view.Path{0, 1, 0}, Value: "milk"},
			msg:   vdom.InputEvent{Value: "milk"},
		},
		{
			name:  "custom",
			event: Event{Seq: 2, Kind: EventCustom, Path: view.Path{}, Payload: []byte{0xCA, 0xFE}},
			msg:   Custom{Payload: []byte{0xCA, 0xFE}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeEvent(EncodeEvent(&tc.event))
			if err != nil {
				t.Fatalf("DecodeEvent() error = %v", err)
			}
			if diff := cmp.Diff(tc.event, *got); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.msg, got.Message()); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClickEventIsCompact(t *testing.T) {
	data := EncodeEvent(&Event{Seq: 1, Kind: EventClick, Path: view.Path{0, 2}})
	// seq + kind + path count + two ids
	if len(data) != 5 {
		t.Errorf("click event = %d bytes, want 5", len(data))
	}
}

func TestDecodeEventInvalidKind(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteByte(0x42)
	e.WritePath(view.Path{0})
	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrInvalidEventKind) {
		t.Errorf("error = %v, want ErrInvalidEventKind", err)
	}
}

func TestEventFrame(t *testing.T) {
	ev := &Event{Seq: 7, Kind: EventInput, Path: view.Path{0}, Value: "x"}
	data, err := EventFrame(ev).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if f.Type != FrameEvent {
		t.Fatalf("Type = %v, want Event", f.Type)
	}
	got, err := DecodeEvent(f.Payload)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if got.Value != "x" || got.Seq != 7 {
		t.Errorf("event = %+v", got)
	}
}

func TestParseEventKind(t *testing.T) {
	for _, k := range []EventKind{EventClick, EventInput, EventCustom} {
		got, err := ParseEventKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseEventKind("hover"); err == nil {
		t.Error("ParseEventKind(hover) should fail")
	}
}
