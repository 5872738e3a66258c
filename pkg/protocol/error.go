package protocol

// ErrorMessage reports a failure back to the sender of an event.
type ErrorMessage struct {
	Code    string // internal/errors code, e.g. "VC011"
	Message string // Human-readable error message
	Fatal   bool   // If true, the connection should be closed
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: msg, Fatal: fatal}, nil
}

// ErrorFrame wraps an encoded error in a frame.
func ErrorFrame(em *ErrorMessage) *Frame {
	return NewFrame(FrameError, EncodeErrorMessage(em))
}
