package storage

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// fromItemValue turns the attributevalue.Number values of a decoded item
// into json.Number, which encodes as a JSON number literal
func fromItemValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case attributevalue.Number:
		return json.Number(tv)
	case map[string]interface{}:
		for k, e := range tv {
			tv[k] = fromItemValue(e)
		}
		return tv
	case []interface{}:
		for i, e := range tv {
			tv[i] = fromItemValue(e)
		}
		return tv
	default:
		return v
	}
}
