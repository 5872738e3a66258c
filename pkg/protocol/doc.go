// Package protocol implements the binary wire format used to carry view
// messages into a driver and host patches out of it.
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameEvent (0x01): an event addressed to a view path
//   - FramePatches (0x02): a batch of vdom patches
//   - FrameError (0x05): an error report
//
// # Encoding
//
//   - Varint: compact encoding for small integers (protobuf-style)
//   - ZigZag: signed integers encoded as unsigned varints
//   - Length-prefixed: strings and byte arrays prefixed with varint length
//   - Big-endian: fixed-width integers
//
// A view.Path is a varint count followed by one varint per id. Paths built
// from sequence counters are a byte or two per segment.
//
// # Usage Example
//
//	data := EncodeEvent(&Event{Seq: 1, Kind: EventClick, Path: path})
//	ev, err := DecodeEvent(data)
//	if err != nil {
//	    // Handle error
//	}
//	drv.SendMessage(ev.Path, ev.Message())
package protocol
