// Package classifier 根据文件头部判断文件类型和分类
package classifier

import (
	"errors"
	"io"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"
)

const (
	// 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261

	// 未知文件类型的标识符
	UnknownMimeType = "unknown"
)

const (
	CategoryImage    = "image"
	CategoryVideo    = "video"
	CategoryAudio    = "audio"
	CategoryDocument = "document"
	CategoryArchive  = "archive"
	CategoryOther    = "other"
)

// Result 文件类型检测结果
type Result struct {
	MIME     string
	Category string
}

var unknown = Result{MIME: UnknownMimeType, Category: CategoryOther}

type Classifier struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Classifier {
	return &Classifier{fs: fs}
}

// Detect 读取文件头部判断类型，无法读取或识别时返回 unknown/other
func (c *Classifier) Detect(path string) Result {
	head, err := c.readHeader(path)
	if err != nil {
		return unknown
	}
	return Match(head)
}

// Match 根据文件头部内容判断类型
func Match(head []byte) Result {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return unknown
	}
	return Result{MIME: kind.MIME.Value, Category: categoryOf(kind)}
}

func categoryOf(kind types.Type) string {
	switch kind.MIME.Type {
	case "image":
		return CategoryImage
	case "video":
		return CategoryVideo
	case "audio":
		return CategoryAudio
	}

	switch kind.Extension {
	case "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "rtf", "odt", "ods", "odp":
		return CategoryDocument
	case "zip", "tar", "gz", "bz2", "rar", "7z", "xz", "zst":
		return CategoryArchive
	}

	return CategoryOther
}

func (c *Classifier) readHeader(path string) ([]byte, error) {
	file, err := c.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, FileHeaderSize)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return head[:n], nil
}
