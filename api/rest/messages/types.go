package messages

import (
	"context"

	"codeberg.org/eldoria/server/eldoria/turns"
)

type MessagesResponse struct {
	Messages []turns.Turn `json:"messages"`
}

// the transcript surface the handler needs; implemented by
// turns.Repository, faked in tests
type TurnLister interface {
	ListTurns(ctx context.Context, userID int64, mode string) ([]turns.Turn, error)
}
