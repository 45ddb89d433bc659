package falling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayload(t *testing.T) {
	msg, err := DecodePayload([]byte(`{"type":"GrabCard","pileIndex":0,"slide":true}`))
	if assert.NoError(t, err) {
		assert.Equal(t, typeGrabCard, msg.Type)
		assert.Equal(t, 0, *msg.PileIndex)
		assert.True(t, msg.Slide)
	}

	msg, err = DecodePayload([]byte(`{"type":"PlayCard","target":"B"}`))
	if assert.NoError(t, err) {
		assert.Equal(t, "B", *msg.Target)
	}

	msg, err = DecodePayload([]byte(`{"type":"PlayCard","target":null}`))
	if assert.NoError(t, err) {
		assert.Nil(t, msg.Target)
	}

	for _, bad := range []string{
		`nope`,
		`{}`,
		`{"type":"Login"}`,
		`{"type":"Login","name":""}`,
		`{"type":"GrabCard","slide":true}`,
		`{"type":"GrabCard","pileIndex":"0"}`,
		`{"type":"PlayCard"}`,
	} {
		_, err := DecodePayload([]byte(bad))
		assert.ErrorIs(t, err, ErrMalformedMessage, bad)
	}

	// unknown types decode and are rejected when routed
	msg, err = DecodePayload([]byte(`{"type":"RevertCard"}`))
	assert.NoError(t, err)
	assert.Equal(t, "RevertCard", msg.Type)
}
