package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	headers := Headers{
		TraceID:       GenerateTraceID(),
		CorrelationID: GenerateCorrelationID(),
		Service:       "burpp",
	}

	payload := VendorApprovedPayload{
		ID:       "v-1",
		UserID:   "u-1",
		Approved: true,
	}

	event := NewEvent(VendorApprovedEvent, EventVersionV1, payload, headers)

	assert.Equal(t, "vendor.approved", event.Event)
	assert.Equal(t, "v1", event.Version)
	assert.Equal(t, headers.TraceID, event.TraceID)
	assert.Equal(t, headers.CorrelationID, event.CorrelationID)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Second)
}

func TestEvent_GetRoutingKey(t *testing.T) {
	event := NewEvent(MessageCreatedEvent, EventVersionV1, nil, Headers{})
	assert.Equal(t, "message.created.v1", event.GetRoutingKey())
}

func TestEvent_ToJSON(t *testing.T) {
	event := NewEvent(ReviewCreatedEvent, EventVersionV1, ReviewCreatedPayload{
		ID:       "r-1",
		VendorID: "v-1",
		Rating:   5,
	}, Headers{TraceID: "t-1"})

	body, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "vendor.review.created", decoded["event"])
	assert.Equal(t, "t-1", decoded["traceId"])
}
