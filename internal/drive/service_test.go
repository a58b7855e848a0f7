package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/drive/v3"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		search string
		want   string
	}{
		{
			name:   "folder only",
			folder: "abc123",
			want:   "'abc123' in parents and mimeType = 'application/pdf' and trashed = false",
		},
		{
			name:   "with search",
			folder: "abc123",
			search: "INV-000",
			want:   "'abc123' in parents and mimeType = 'application/pdf' and trashed = false and name contains 'INV-000'",
		},
		{
			name:   "quotes are escaped",
			folder: "abc123",
			search: "O'Brien",
			want:   `'abc123' in parents and mimeType = 'application/pdf' and trashed = false and name contains 'O\'Brien'`,
		},
		{
			name:   "blank search ignored",
			folder: "abc123",
			search: "   ",
			want:   "'abc123' in parents and mimeType = 'application/pdf' and trashed = false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Query(tt.folder, tt.search))
		})
	}
}

func TestPageSize(t *testing.T) {
	assert.Equal(t, int64(DefaultPageSize), PageSize(0))
	assert.Equal(t, int64(DefaultPageSize), PageSize(-3))
	assert.Equal(t, int64(20), PageSize(20))
	assert.Equal(t, int64(1000), PageSize(5000))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{-1, "0 B"},
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{48213, "47 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.n), "bytes=%d", tt.n)
	}
}

func TestToDocument(t *testing.T) {
	doc := toDocument(&drive.File{
		Id:           "f1",
		Name:         "INV-00001_Test.pdf",
		Size:         2048,
		CreatedTime:  "2025-03-14T10:00:00.000Z",
		ModifiedTime: "not a time",
		WebViewLink:  "https://drive.google.com/file/d/f1/view",
	})

	assert.Equal(t, "f1", doc.ID)
	assert.Equal(t, int64(2048), doc.Size)
	assert.Equal(t, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC), doc.CreatedAt.UTC())
	assert.True(t, doc.ModifiedAt.IsZero())
	assert.Equal(t, "https://drive.google.com/file/d/f1/view", doc.ViewLink)
}
