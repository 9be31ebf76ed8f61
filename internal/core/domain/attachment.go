package domain

// Attachment is supporting-document metadata for an entry. The binary itself
// lives in external storage; only the reference is kept here.
type Attachment struct {
	AttachmentID string `json:"attachmentID"`
	EntryID      string `json:"entryID"`
	FileName     string `json:"fileName"`
	ContentType  string `json:"contentType"`
	SizeBytes    int64  `json:"sizeBytes"`
	StorageKey   string `json:"storageKey"` // Opaque key in the object store
	AuditFields
}
