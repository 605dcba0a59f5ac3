package grpc

import "encoding/json"

// jsonCodec carries address messages as JSON on the gRPC wire. The address
// service registers the same codec name.
type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
