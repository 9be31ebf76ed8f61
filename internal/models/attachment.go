package models

// Attachment represents a row in the entry_attachments table.
type Attachment struct {
	AttachmentID string `db:"attachment_id"`
	EntryID      string `db:"entry_id"`
	FileName     string `db:"file_name"`
	ContentType  string `db:"content_type"`
	SizeBytes    int64  `db:"size_bytes"`
	StorageKey   string `db:"storage_key"`
	AuditFields
}
