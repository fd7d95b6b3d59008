package narrator

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"
)

// request sent to the narrator backend for one turn
type generateRequest struct {
	History            string `json:"history"`
	PreviousAIResponse string `json:"previous_ai_response"`
	PlayerAction       string `json:"player_action"`
}

// response returned by the narrator backend
type generateResponse struct {
	LatestHistory    string `json:"latest_history"`
	LatestAIResponse string `json:"latest_ai_response"`
}

var (
	ErrEmptyResponse = errors.New("narrator returned an empty response")
)

// calls the external narrative generation backend.
// One logical request per turn; never retried, since the backend call is
// the side-effectful continuation of the adventure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}
