// Package normalize turns the reply shapes an AI chat backend can produce into
// a single block of text.
//
// A reply is decoded once into a Response, a tagged union with three usable
// variants: plain text, a single message content field, or a list of message
// fragments. Decoding is first-match in that order, so an ambiguous payload is
// always resolved the same way.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when a reply carries no usable text
var ErrEmptyResponse = errors.New("Empty response from AI")

// Kind identifies which reply shape a Response holds
type Kind int

const (
	KindUnknown Kind = iota
	KindPlainText
	KindSingleContent
	KindFragmentList
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain_text"
	case KindSingleContent:
		return "single_content"
	case KindFragmentList:
		return "fragment_list"
	default:
		return "unknown"
	}
}

// Response is a decoded chat reply. Only the field matching Kind is meaningful.
type Response struct {
	Kind      Kind
	Text      string
	Content   string
	Fragments []string
}

// PlainText wraps a bare string reply
func PlainText(s string) Response {
	return Response{Kind: KindPlainText, Text: s}
}

// SingleContent wraps a reply exposing one message content field
func SingleContent(s string) Response {
	return Response{Kind: KindSingleContent, Content: s}
}

// FragmentList wraps a reply made of several message fragments
func FragmentList(parts ...string) Response {
	return Response{Kind: KindFragmentList, Fragments: parts}
}

// Decode classifies a loosely typed reply, such as the result of
// json.Unmarshal into an interface{}.
//
// Order: a string is plain text even when blank; an object whose message is an
// object with a non-empty string content is single content; an object whose
// message is a list is a fragment list; anything else is unknown.
func Decode(raw any) Response {
	switch v := raw.(type) {
	case string:
		return PlainText(v)
	case Response:
		return v
	case map[string]any:
		return decodeObject(v)
	}
	return Response{}
}

func decodeObject(obj map[string]any) Response {
	message, ok := obj["message"]
	if !ok || message == nil {
		return Response{}
	}

	if m, ok := message.(map[string]any); ok {
		if content, ok := m["content"].(string); ok && content != "" {
			return SingleContent(content)
		}
	}

	if list, ok := message.([]any); ok {
		parts := make([]string, len(list))
		for i, item := range list {
			if m, ok := item.(map[string]any); ok {
				parts[i], _ = m["content"].(string)
			}
		}
		return FragmentList(parts...)
	}

	return Response{}
}

// DecodeJSON decodes a JSON reply body and classifies it with Decode
func DecodeJSON(data []byte) (Response, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Response{}, fmt.Errorf("failed to decode response body: %w", err)
	}
	return Decode(raw), nil
}

// Normalize extracts the trimmed text of a reply. Fragments are joined with
// newlines. A blank result is reported as ErrEmptyResponse; partial text is
// never returned alongside an error.
func Normalize(r Response) (string, error) {
	var reply string
	switch r.Kind {
	case KindPlainText:
		reply = r.Text
	case KindSingleContent:
		reply = r.Content
	case KindFragmentList:
		reply = strings.Join(r.Fragments, "\n")
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}
