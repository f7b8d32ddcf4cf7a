package classifier

import (
	"testing"

	"github.com/spf13/afero"
)

var (
	pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
	pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		head     []byte
		mime     string
		category string
	}{
		{"png", pngHeader, "image/png", CategoryImage},
		{"pdf", pdfHeader, "application/pdf", CategoryDocument},
		{"text", []byte("plain text content"), UnknownMimeType, CategoryOther},
		{"empty", nil, UnknownMimeType, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.head)
			if got.MIME != tt.mime {
				t.Errorf("MIME = %q, 期望 %q", got.MIME, tt.mime)
			}
			if got.Category != tt.category {
				t.Errorf("Category = %q, 期望 %q", got.Category, tt.category)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/image.png", pngHeader, 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/data/short.txt", []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(fs)

	if got := c.Detect("/data/image.png"); got.MIME != "image/png" || got.Category != CategoryImage {
		t.Errorf("image.png 检测结果错误: %+v", got)
	}
	if got := c.Detect("/data/short.txt"); got.MIME != UnknownMimeType {
		t.Errorf("短文本应为 unknown: %+v", got)
	}
	if got := c.Detect("/data/missing"); got != unknown {
		t.Errorf("不存在的文件应为 unknown: %+v", got)
	}
}
