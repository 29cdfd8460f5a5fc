package driver

// Protocol encodes a Context into wire bytes and decodes the response,
// per vendor wire format. Implementations are stateless per call; the
// request/response exchange sequence is fixed by the vendor protocol.
//
// Concurrent callers sharing one transport must be serialized by the
// owner; these are half duplex, single session wire protocols.
type Protocol interface {
	Read(ctx *Context) (interface{}, error)
	Write(ctx *Context) error
}
