package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRecord_LenientFields(t *testing.T) {
	body := `{
		"name": "Asha",
		"phone": 9876543210,
		"address": null,
		"payment_id": "8AB12345CD678901E",
		"items": [{"name": "Saree", "quantity": 2, "price": 2490.5}, {"name": "Scarf"}]
	}`

	var rec NotificationRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, Text("Asha"), rec.Name)
	assert.Equal(t, Text("9876543210"), rec.Phone)
	assert.Equal(t, Text(""), rec.Address)
	assert.Equal(t, Text(""), rec.Email)
	assert.Equal(t, Text("8AB12345CD678901E"), rec.PaymentID)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, Text("2"), rec.Items[0].Quantity)
	assert.Equal(t, Text("2490.5"), rec.Items[0].Price)
	assert.Equal(t, Text(""), rec.Items[1].Quantity)
}

func TestText_CompactsStructuredValues(t *testing.T) {
	var txt Text
	require.NoError(t, json.Unmarshal([]byte(`{ "city" : "Pune" }`), &txt))
	assert.Equal(t, Text(`{"city":"Pune"}`), txt)
}
