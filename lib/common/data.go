package common

import (
	"encoding/json"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

// EncodeJSONValue is the record codec of the storage layer.
func EncodeJSONValue(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func DecodeJSONValue(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}
