// Package protocol defines the request/response contract between the
// detection side and the coordinator: a closed set of message kinds with
// fixed, validated payload shapes. Unknown kinds are rejected explicitly.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tags a message with its meaning
type Kind string

const (
	KindVerifyClaim     Kind = "VERIFY_CLAIM"
	KindGetCacheStats   Kind = "GET_CACHE_STATS"
	KindClearCache      Kind = "CLEAR_CACHE"
	KindVerifySelection Kind = "VERIFY_SELECTION"
)

// Message is one request crossing the context boundary
type Message struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the uniform reply shape
type Response struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// VerifyClaimPayload asks for verification of a piece of text
type VerifyClaimPayload struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// VerifySelectionPayload forwards a user text selection for verification
type VerifySelectionPayload struct {
	Text string `json:"text"`
}

var errEmptyText = errors.New("text must not be empty")

// decodePayload unmarshals a payload strictly: unknown fields are faults
// at the context boundary, not silently dropped.
func decodePayload(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// ParseVerifyClaim validates and extracts a VERIFY_CLAIM payload
func ParseVerifyClaim(msg Message) (*VerifyClaimPayload, error) {
	var payload VerifyClaimPayload
	if err := decodePayload(msg.Payload, &payload); err != nil {
		return nil, err
	}
	if payload.Text == "" {
		return nil, errEmptyText
	}
	return &payload, nil
}

// ParseVerifySelection validates and extracts a VERIFY_SELECTION payload
func ParseVerifySelection(msg Message) (*VerifySelectionPayload, error) {
	var payload VerifySelectionPayload
	if err := decodePayload(msg.Payload, &payload); err != nil {
		return nil, err
	}
	if payload.Text == "" {
		return nil, errEmptyText
	}
	return &payload, nil
}
