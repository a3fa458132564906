package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimePDF         = "application/pdf"
	MimeDoc         = "application/msword"
	MimeDocx        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePpt         = "application/vnd.ms-powerpoint"
	MimePptx        = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeXls         = "application/vnd.ms-excel"
	MimeXlsx        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeText        = "text/plain"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

// AttachmentPrefix is the object-name prefix for uploaded problem attachments.
const AttachmentPrefix = "attachments"
