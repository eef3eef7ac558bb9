package profile

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.UnixMilli(1735689600000)

	key := BuildObjectKey("tenant-a", "opening-1", "resume.pdf", now)
	assert.Equal(t, "tenant-a/opening-1/1735689600000_resume.pdf", key)
}

func TestOriginalFilename_RoundTrip(t *testing.T) {
	now := time.Now()
	filenames := []string{
		"resume.pdf",
		"john_doe_resume.pdf",
		"deck.pptx",
		"_leading.ppt",
	}

	for _, name := range filenames {
		t.Run(name, func(t *testing.T) {
			key := BuildObjectKey("t1", "o1", name, now)
			assert.Equal(t, name, OriginalFilename(key))
		})
	}
}

func TestOriginalFilename_NoPrefix(t *testing.T) {
	assert.Equal(t, "resume.pdf", OriginalFilename("t1/o1/resume.pdf"))
}

func TestKeyScope_Contains(t *testing.T) {
	scope := KeyScope{TenantID: "tenant-a", OpeningID: "opening-1"}

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"well-formed key in scope", "tenant-a/opening-1/1735689600000_resume.pdf", true},
		{"filename with underscores", "tenant-a/opening-1/1735689600000_john_doe.pdf", true},
		{"different tenant", "tenant-b/opening-1/1735689600000_resume.pdf", false},
		{"different opening", "tenant-a/opening-2/1735689600000_resume.pdf", false},
		{"missing timestamp prefix", "tenant-a/opening-1/resume.pdf", false},
		{"non-numeric timestamp", "tenant-a/opening-1/abc_resume.pdf", false},
		{"too few segments", "tenant-a/resume.pdf", false},
		{"empty key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scope.Contains(tt.key))
		})
	}
}

func TestInvalidFilenames(t *testing.T) {
	tests := []struct {
		name      string
		filenames []string
		want      []string
	}{
		{"all allowed", []string{"a.pdf", "b.pptx", "c.ppt"}, nil},
		{"uppercase extension allowed", []string{"A.PDF"}, nil},
		{"rejects others", []string{"a.pdf", "b.exe", "c.docx"}, []string{"b.exe", "c.docx"}},
		{"no extension", []string{"resume"}, []string{"resume"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invalidFilenames(tt.filenames))
		})
	}
}

func TestMaxFilesPerRequest(t *testing.T) {
	names := make([]string, 0, MaxFilesPerRequest)
	for i := 0; i < MaxFilesPerRequest; i++ {
		names = append(names, fmt.Sprintf("file%d.pdf", i))
	}
	assert.Nil(t, invalidFilenames(names))
}
