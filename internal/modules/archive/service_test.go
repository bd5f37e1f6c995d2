package archive

import (
	"testing"
	"time"
)

func TestArchiveObjectKey(t *testing.T) {
	at := time.Date(2026, 2, 7, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"default prefix", "", "archives/2026/02/archive-x.zip"},
		{"custom prefix", "backups/bankbot", "backups/bankbot/2026/02/archive-x.zip"},
		{"prefix slashes trimmed", "/backups/", "backups/2026/02/archive-x.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := archiveObjectKey(tt.prefix, "archive-x.zip", at); got != tt.want {
				t.Fatalf("archiveObjectKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeRowConvertsBytes(t *testing.T) {
	doc := normalizeRow(map[string]interface{}{
		"id":    []byte("abc"),
		"count": 3,
	})
	if doc["id"] != "abc" {
		t.Fatalf("id = %v, want string conversion", doc["id"])
	}
	if doc["count"] != 3 {
		t.Fatalf("count = %v", doc["count"])
	}
}
