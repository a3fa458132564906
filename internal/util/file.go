package util

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

var ErrFileTooLarge = errors.New("file too large")

// attachmentKinds maps accepted declared MIME types to the stored attachment type.
var attachmentKinds = map[string]string{
	MimePDF:  "pdf",
	MimeDoc:  "doc",
	MimeDocx: "docx",
	MimePpt:  "ppt",
	MimePptx: "pptx",
	MimeXls:  "xls",
	MimeXlsx: "xlsx",
	MimeText: "txt",
}

// sniffedFamilies lists what http.DetectContentType reports for each declared type.
// OOXML documents are zip containers, legacy Office files are OLE blobs.
var sniffedFamilies = map[string][]string{
	MimePDF:  {MimePDF},
	MimeDoc:  {MimeOctetStream},
	MimePpt:  {MimeOctetStream},
	MimeXls:  {MimeOctetStream},
	MimeDocx: {MimeZip},
	MimePptx: {MimeZip},
	MimeXlsx: {MimeZip},
	MimeText: {MimeText},
}

// AttachmentType classifies a declared MIME type; unknown types yield "other".
func AttachmentType(declared string) string {
	if kind, ok := attachmentKinds[baseMime(declared)]; ok {
		return kind
	}
	return "other"
}

// ValidateMimeType 深度校验文件 MIME 类型
// The declared type must be one of the accepted document types and the first
// 512 bytes must be consistent with it.
func ValidateMimeType(reader io.Reader, declared string) (string, error) {
	declared = baseMime(declared)
	families, ok := sniffedFamilies[declared]
	if !ok {
		return declared, fmt.Errorf("invalid file type: %s. Only PDF, Word, PowerPoint, Excel, and Text files are allowed", declared)
	}

	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	sniffed := baseMime(http.DetectContentType(buffer[:n]))
	for _, allowed := range families {
		if sniffed == allowed {
			return declared, nil
		}
	}

	return declared, errors.New("invalid file type: content does not match " + declared)
}

// CheckFileSize rejects files above maxMB megabytes.
func CheckFileSize(name string, size, maxMB int64) error {
	if size > maxMB*1024*1024 {
		return fmt.Errorf("%w: %s exceeds %dMB", ErrFileTooLarge, name, maxMB)
	}
	return nil
}

func baseMime(v string) string {
	mediaType, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mediaType
}
