// Package wire defines the JSON contract shared by the REST server and the
// HTTP client: request bodies, response payloads, the status envelope and the
// closed set of error messages.
package wire

import (
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages. The set is closed; servers never send free text.
const (
	MsgUnauthorised      = "Unauthorised"
	MsgInvalidJWT        = "Invalid JWT"
	MsgExpiredJWT        = "Expired JWT"
	MsgInvalidBody       = "Invalid body"
	MsgAddressMismatched = "Address mismatched"
	MsgItemOrderNotFound = "Item order not found"
	MsgItemNotFound      = "Item not found"
	MsgInternal          = "Internal error"
)

var messageErrors = map[string]error{
	MsgUnauthorised:      common.ErrUnauthorized,
	MsgInvalidJWT:        common.ErrInvalidToken,
	MsgExpiredJWT:        common.ErrTokenExpired,
	MsgInvalidBody:       common.ErrInvalidBody,
	MsgAddressMismatched: common.ErrAddressMismatch,
	MsgItemOrderNotFound: common.ErrItemOrderNotFound,
	MsgItemNotFound:      common.ErrItemNotFound,
	MsgInternal:          common.ErrorInternal,
}

// MessageFor maps an error onto the closed message set. Unknown errors
// become MsgInternal.
func MessageFor(err error) string {
	// Order matters: the first match wins.
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return MsgUnauthorised
	case errors.Is(err, common.ErrTokenExpired):
		return MsgExpiredJWT
	case errors.Is(err, common.ErrInvalidToken):
		return MsgInvalidJWT
	case errors.Is(err, common.ErrInvalidBody):
		return MsgInvalidBody
	case errors.Is(err, common.ErrAddressMismatch):
		return MsgAddressMismatched
	case errors.Is(err, common.ErrItemOrderNotFound):
		return MsgItemOrderNotFound
	case errors.Is(err, common.ErrItemNotFound):
		return MsgItemNotFound
	default:
		return MsgInternal
	}
}

// ErrorFromMessage is the inverse of MessageFor. It returns a *ResponseError
// that unwraps to the matching sentinel.
func ErrorFromMessage(msg string) error {
	sentinel, ok := messageErrors[msg]
	if !ok {
		sentinel = common.ErrorInternal
	}
	return &ResponseError{Message: msg, err: sentinel}
}

// ResponseError is an error response received from the server.
type ResponseError struct {
	Message string
	err     error
}

func (e *ResponseError) Error() string { return e.Message }

func (e *ResponseError) Unwrap() error { return e.err }

// Envelope is the outer shape of every response.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Item is a card as sent over the wire.
type Item struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category common.Category `json:"category"`
}

type LoginRequest struct {
	Address       string `json:"address"`
	Message       string `json:"message"`
	SignedMessage string `json:"signedMessage"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AllItemsResponse struct {
	Items  []Item                       `json:"items"`
	Orders map[common.Category][]string `json:"orders"`
}

type CreateRequest struct {
	Title    string          `json:"title"`
	Category common.Category `json:"category"`
}

type IDResponse struct {
	ID string `json:"id"`
}

// UpdateRequest moves an item and optionally rewrites its text. A nil Title
// or Content leaves the stored value unchanged.
type UpdateRequest struct {
	ID       string          `json:"id"`
	Title    *string         `json:"title,omitempty"`
	Content  *string         `json:"content,omitempty"`
	Category common.Category `json:"category"`
	Position int             `json:"position"`
}

type DeleteRequest struct {
	ID       string          `json:"id"`
	Category common.Category `json:"category"`
}

type DeletedRequest struct {
	Offset int `json:"offset"`
}

type DeletedResponse struct {
	Items []Item `json:"items"`
}

type RestoreRequest struct {
	ID string `json:"id"`
}

type RestoreResponse struct {
	Item Item `json:"item"`
}

type Empty struct{}
