package service

import (
	"bytes"
	"context"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/util"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type upload struct {
	name, contentType string
	body              []byte
}

func fileHeaders(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="attachments"; filename="`+u.name+`"`)
		h.Set("Content-Type", u.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(u.body)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["attachments"]
}

func localStorage(t *testing.T, maxMB int64) (*StorageService, string) {
	dir := t.TempDir()
	cfg := &config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir, MaxFileSizeMB: maxMB}}
	return NewStorageService(cfg), dir
}

func TestUploadAttachmentsStoresAndClassifies(t *testing.T) {
	svc, dir := localStorage(t, 10)
	files := fileHeaders(t,
		upload{"Spec.PDF", util.MimePDF, []byte("%PDF-1.7 body")},
		upload{"notes.txt", "text/plain", []byte("meeting notes")},
	)

	attachments, err := svc.UploadAttachments(context.Background(), files)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("attachments = %d", len(attachments))
	}
	if attachments[0].FileType != "pdf" || attachments[1].FileType != "txt" {
		t.Fatalf("types = %s, %s", attachments[0].FileType, attachments[1].FileType)
	}
	if attachments[0].OriginalName != "Spec.PDF" || !strings.HasSuffix(attachments[0].FileName, ".pdf") {
		t.Fatalf("names = %+v", attachments[0])
	}
	if !strings.HasPrefix(attachments[0].FilePath, "/uploads/attachments/attachment-") {
		t.Fatalf("path = %s", attachments[0].FilePath)
	}

	stored := filepath.Join(dir, util.AttachmentPrefix, attachments[1].FileName)
	data, err := os.ReadFile(stored)
	if err != nil || string(data) != "meeting notes" {
		t.Fatalf("stored file: %q, %v", data, err)
	}
}

func TestUploadAttachmentsRejectsBeforeStoring(t *testing.T) {
	svc, dir := localStorage(t, 10)
	files := fileHeaders(t,
		upload{"ok.txt", "text/plain", []byte("fine")},
		upload{"photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n")},
	)

	if _, err := svc.UploadAttachments(context.Background(), files); util.KindOf(err) != util.KindValidationFailed {
		t.Fatalf("expected validation failure, got %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, util.AttachmentPrefix))
	if len(entries) != 0 {
		t.Fatalf("nothing should be stored, found %d files", len(entries))
	}

	if _, err := svc.UploadAttachments(context.Background(), nil); util.KindOf(err) != util.KindValidationFailed {
		t.Fatalf("no files: %v", err)
	}
}

func TestUploadAttachmentsSizeLimit(t *testing.T) {
	svc, _ := localStorage(t, 1)
	big := bytes.Repeat([]byte("a"), 1024*1024+1)
	files := fileHeaders(t, upload{"big.txt", "text/plain", big})

	_, err := svc.UploadAttachments(context.Background(), files)
	if util.KindOf(err) != util.KindValidationFailed || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size rejection, got %v", err)
	}
}
