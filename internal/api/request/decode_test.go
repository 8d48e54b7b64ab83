package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeMissingFields(t *testing.T) {
	d := NewDecoder()

	tests := []struct {
		name    string
		body    string
		dst     any
		kind    error
		message string
	}{
		{"missing id", `{"player":{}}`, &PlayerRequest{}, model.ErrIDRequired, "player.id is required"},
		{"missing del_player", `{}`, &LeaveRequest{}, model.ErrValidation, "del_player is required"},
		{"missing name", `{"player":{}}`, &RenamePlayerRequest{}, model.ErrNameRequired, "player.name is required"},
		{"empty body", ``, &CreateGameRequest{}, model.ErrValidation, "player is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Decode(newRequest(tt.body), tt.dst)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Equal(t, tt.message, err.Error())

			var fe *model.FieldError
			require.True(t, errors.As(err, &fe))
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	err := NewDecoder().Decode(newRequest(`{"player":`), &PlayerRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrValidation)
}

func TestDecodeFlexIDs(t *testing.T) {
	d := NewDecoder()

	tests := []struct {
		body string
		want model.PlayerID
	}{
		{`{"player":{"id":7}}`, 7},
		{`{"player":{"id":"7"}}`, 7},
		{`{"player":{"id":""}}`, 0},
		{`{"player":{"id":"seven"}}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req PlayerRequest
			require.NoError(t, d.Decode(newRequest(tt.body), &req))
			assert.Equal(t, tt.want, req.PlayerID())
		})
	}
}

func TestDecodeJoinTeamAcceptsMissingPlayer(t *testing.T) {
	d := NewDecoder()

	for _, body := range []string{``, `{}`, `{"player":{}}`, `{"player":{"id":""}}`} {
		var req JoinTeamRequest
		require.NoError(t, d.Decode(newRequest(body), &req), body)
		assert.Equal(t, model.PlayerID(0), req.PlayerID(), body)
	}

	var req JoinTeamRequest
	require.NoError(t, d.Decode(newRequest(`{"player":{"id":3}}`), &req))
	assert.Equal(t, model.PlayerID(3), req.PlayerID())
}
