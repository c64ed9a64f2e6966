package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(BookingEvent{
		Type:       "payment_completed",
		BookingID:  5,
		VehicleID:  7,
		CustomerID: "customer-1",
		Status:     "active",
		TotalCents: 1500000,
	})
	require.NoError(t, err)

	event, ok := decodeEvent(payload)
	assert.True(t, ok)
	assert.Equal(t, "payment_completed", event.Type)
	assert.Equal(t, int64(5), event.BookingID)
	assert.Equal(t, int64(1500000), event.TotalCents)
}

func TestDecodeEvent_MalformedDropped(t *testing.T) {
	_, ok := decodeEvent([]byte("not json"))
	assert.False(t, ok)
}
