package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	cases := map[string]Text{
		`"12V"`: "12V",
		`""`:    "",
		`25`:    "25",
		`12.50`: "12.5",
		`1e3`:   "1000",
		`-3`:    "-3",
		`0`:     "",
		`0.0`:   "",
		`null`:  "",
		`true`:  "true",
		`false`: "",
		`" 7 "`: " 7 ",
	}
	for raw, want := range cases {
		var got Text
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{`{"count":1}`, `[1,2]`} {
		var got Text
		assert.Error(t, json.Unmarshal([]byte(raw), &got), raw)
	}
}

func TestCreateProductRequest_NumericBody(t *testing.T) {
	var req CreateProductRequest
	body := `{"name":"Horn Relay","category":"Relays","volt":12,"partNo":"HR-001","color":"Black","image":"data:image/png;base64,aGVsbG8=","stock":25}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Empty(t, ValidateProduct(req))
	assert.Equal(t, Text("12"), req.Volt)
	assert.Equal(t, Text("25"), req.Stock)

	req = CreateProductRequest{}
	body = `{"name":"Horn Relay","category":"Relays","volt":12,"partNo":"HR-001","color":"Black","image":"data:image/png;base64,aGVsbG8=","stock":0}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, []string{"stock"}, ValidateProduct(req))
}
