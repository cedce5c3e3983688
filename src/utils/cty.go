package utils

import (
	"encoding/json"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Ugly workaround because gocty.FromCtyValue() doesn't support optional values.
func FromCtyValue(value cty.Value, out any) error {
	data, err := ctyjson.Marshal(value, value.Type())
	if err != nil {
		return err
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return err
	}

	return nil
}
