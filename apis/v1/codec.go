package apiv1

import (
	"encoding/json"
)

// jsonCodec marshals the hand-defined message structs with
// encoding/json, replacing the default protobuf codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
