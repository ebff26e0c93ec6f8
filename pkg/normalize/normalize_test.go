package normalize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Response
	}{
		{
			name: "string is plain text",
			raw:  "print('hi')",
			want: PlainText("print('hi')"),
		},
		{
			name: "blank string stays plain text",
			raw:  "   ",
			want: PlainText("   "),
		},
		{
			name: "message object with content",
			raw:  map[string]any{"message": map[string]any{"content": "x"}},
			want: SingleContent("x"),
		},
		{
			name: "message list",
			raw: map[string]any{"message": []any{
				map[string]any{"content": "a"},
				map[string]any{"content": "b"},
			}},
			want: FragmentList("a", "b"),
		},
		{
			name: "fragments without string content contribute empty lines",
			raw: map[string]any{"message": []any{
				map[string]any{"content": "a"},
				map[string]any{"role": "assistant"},
				"junk",
				map[string]any{"content": 42.0},
			}},
			want: FragmentList("a", "", "", ""),
		},
		{
			name: "empty content is not single content",
			raw:  map[string]any{"message": map[string]any{"content": ""}},
			want: Response{},
		},
		{
			name: "non-string content is not single content",
			raw:  map[string]any{"message": map[string]any{"content": 7.0}},
			want: Response{},
		},
		{
			name: "missing message",
			raw:  map[string]any{"text": "hello"},
			want: Response{},
		},
		{
			name: "null message",
			raw:  map[string]any{"message": nil},
			want: Response{},
		},
		{
			name: "nil payload",
			raw:  nil,
			want: Response{},
		},
		{
			name: "bare list is unknown",
			raw:  []any{"a", "b"},
			want: Response{},
		},
		{
			name: "already decoded response passes through",
			raw:  FragmentList("z"),
			want: FragmentList("z"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Response
		want    string
		wantErr error
	}{
		{name: "plain text", in: PlainText("hello"), want: "hello"},
		{name: "plain text is trimmed", in: PlainText("  hello \n"), want: "hello"},
		{name: "single content", in: SingleContent("x"), want: "x"},
		{name: "fragments joined with newline", in: FragmentList("a", "b"), want: "a\nb"},
		{name: "fragments trimmed as a whole", in: FragmentList("", "a", "b", ""), want: "a\nb"},
		{name: "blank plain text", in: PlainText("  \t"), wantErr: ErrEmptyResponse},
		{name: "whitespace content", in: SingleContent("   "), wantErr: ErrEmptyResponse},
		{name: "empty fragment list", in: FragmentList(), wantErr: ErrEmptyResponse},
		{name: "blank fragments", in: FragmentList("", " "), wantErr: ErrEmptyResponse},
		{name: "unknown", in: Response{}, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "json string", body: `"hello"`, want: "hello"},
		{name: "single content", body: `{"message":{"content":"x"}}`, want: "x"},
		{name: "fragments", body: `{"message":[{"content":"a"},{"content":"b"}]}`, want: "a\nb"},
		{name: "empty content", body: `{"message":{"content":""}}`, wantErr: ErrEmptyResponse},
		{
			name: "ollama chat reply",
			body: `{"model":"llama3","message":{"role":"assistant","content":"fn main() {}\n"},"done":true}`,
			want: "fn main() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeJSON([]byte(tt.body))
			require.NoError(t, err)

			got, err := Normalize(resp)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, err := DecodeJSON([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response body")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "plain_text", KindPlainText.String())
	assert.Equal(t, "single_content", KindSingleContent.String())
	assert.Equal(t, "fragment_list", KindFragmentList.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
