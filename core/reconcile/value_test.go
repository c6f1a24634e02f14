package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_DecodesNumbersAndStrings(t *testing.T) {
	var req ChangeRequest
	body := `{"itemId":"10","outOfOrderFlag":true,"status":2,"unitValue":"12.50","orderRef":7,"description":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	id, err := req.ItemID.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	assert.True(t, req.OutOfOrder.Bool())

	status, err := req.Status.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status)

	d, err := req.UnitValue.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	assert.False(t, req.Description.Present())
	assert.False(t, req.ReturnedAt.Present())
}

func TestValue_KeepsPrecision(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`1234567.89`), &v))

	d, err := v.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "1234567.89", d.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `1234567.89`, string(out))
}

func TestValue_UnparsableDoesNotFailDecode(t *testing.T) {
	var req ChangeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"unitValue":"abc","orderId":{"x":1}}`), &req))

	_, err := req.UnitValue.Decimal()
	assert.Error(t, err)
	_, err = req.OrderID.Int()
	assert.Error(t, err)
}
