package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PostID
		wantErr bool
	}{
		{name: "string id", input: `"42"`, want: NewPostID("42")},
		{name: "numeric id", input: `42`, want: NewNumericPostID(42)},
		{name: "uuid id", input: `"b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5"`, want: NewPostID("b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")},
		{name: "null id", input: `null`, want: PostID{}},
		{name: "object is rejected", input: `{"id":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id PostID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

// Id возвращается серверу в той форме, в которой пришел
func TestPostID_RoundTrip(t *testing.T) {
	for _, input := range []string{`{"id":42}`, `{"id":"42"}`, `{"id":"b692f5c0"}`, `{"id":12345678901234567890}`} {
		t.Run(input, func(t *testing.T) {
			var req struct {
				ID PostID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(input), &req))

			out, err := json.Marshal(req)
			require.NoError(t, err)
			assert.JSONEq(t, input, string(out))
		})
	}
}

func TestPostID_Matches(t *testing.T) {
	assert.True(t, NewNumericPostID(42).Matches(NewPostID("42")))
	assert.False(t, NewPostID("42").Matches(NewPostID("43")))
	assert.NotEqual(t, NewNumericPostID(42), NewPostID("42"))
	assert.True(t, NewNumericPostID(42).IsNumeric())
	assert.True(t, PostID{}.IsZero())
	assert.Equal(t, "42", NewNumericPostID(42).String())
}

func TestPost_DecodeBackendShape(t *testing.T) {
	raw := `{"id":7,"content":{"type":"image","content":"https://cdn.example.com/a.png"},"date":"2024-05-01T10:00:00Z"}`

	var post Post
	require.NoError(t, json.Unmarshal([]byte(raw), &post))

	assert.Equal(t, NewNumericPostID(7), post.ID)
	assert.Equal(t, ContentTypeImage, post.Content.Type)
	assert.Equal(t, "https://cdn.example.com/a.png", post.Content.Content)
	assert.True(t, post.Date.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestPost_DecodeDates(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{name: "rfc3339", date: `"2024-05-01T10:00:00Z"`, want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", date: `"2024-05-01T13:00:00.250+03:00"`, want: time.Date(2024, 5, 1, 10, 0, 0, 250e6, time.UTC)},
		{name: "epoch milliseconds", date: `1700000000000`, want: time.UnixMilli(1700000000000).UTC()},
		{name: "fractional epoch", date: `1700000000000.5`, want: time.UnixMicro(1700000000000500).UTC()},
		{name: "space separated", date: `"2024-01-01 12:00:00"`, want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{name: "without zone", date: `"2024-01-01T12:00:00.123"`, want: time.Date(2024, 1, 1, 12, 0, 0, 123e6, time.UTC)},
		{name: "date only", date: `"2024-01-01"`, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc1123", date: `"Mon, 01 Jan 2024 12:00:00 GMT"`, want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{name: "empty string", date: `""`},
		{name: "null", date: `null`},
		{name: "unknown format", date: `"yesterday"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"id":"1","content":{"type":"text","content":"hi"},"date":` + tt.date + `}`

			var post Post
			require.NoError(t, json.Unmarshal([]byte(raw), &post))
			assert.True(t, tt.want.Equal(post.Date), "got %s", post.Date)
			assert.Equal(t, "hi", post.Content.Content)
		})
	}

	t.Run("missing date", func(t *testing.T) {
		var post Post
		require.NoError(t, json.Unmarshal([]byte(`{"id":"1"}`), &post))
		assert.True(t, post.Date.IsZero())
		assert.Equal(t, NewPostID("1"), post.ID)
	})

	t.Run("object is rejected", func(t *testing.T) {
		var post Post
		assert.Error(t, json.Unmarshal([]byte(`{"id":"1","date":{"t":1}}`), &post))
	})
}

// Дата, записанная сервером, читается обратно без потерь
func TestPost_DateRoundTrip(t *testing.T) {
	post := Post{
		ID:      NewPostID("p1"),
		Date:    time.Date(2024, 5, 1, 10, 0, 0, 123e6, time.UTC),
		Content: PostContent{Type: ContentTypeText, Content: "hi"},
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)

	var decoded Post
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, post.ID, decoded.ID)
	assert.True(t, post.Date.Equal(decoded.Date))
	assert.Equal(t, post.Content, decoded.Content)
}

func TestProfile_Clone(t *testing.T) {
	original := &Profile{
		Username: "alice",
		Blogs: []Post{
			{ID: NewPostID("1"), Content: PostContent{Type: ContentTypeText, Content: "first"}},
			{ID: NewPostID("2"), Content: PostContent{Type: ContentTypeText, Content: "second"}},
		},
	}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	// Изменения копии не должны затрагивать оригинал
	clone.Blogs[0].Content.Content = "changed"
	clone.Blogs = append(clone.Blogs, Post{ID: NewPostID("3")})

	assert.Equal(t, "first", original.Blogs[0].Content.Content)
	assert.Len(t, original.Blogs, 2)

	var nilProfile *Profile
	assert.Nil(t, nilProfile.Clone())
}

func TestProfile_IndexOf(t *testing.T) {
	p := &Profile{Blogs: []Post{{ID: NewPostID("a")}, {ID: NewPostID("b")}}}

	assert.Equal(t, 0, p.IndexOf(NewPostID("a")))
	assert.Equal(t, 1, p.IndexOf(NewPostID("b")))
	assert.Equal(t, -1, p.IndexOf(NewPostID("c")))
}
