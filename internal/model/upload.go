package model

// FileUpload is a file received in a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BulkCreateResult reports products created by a bulk request.
type BulkCreateResult struct {
	Success      bool      `json:"success"`
	CreatedCount int       `json:"createdCount"`
	Products     []Product `json:"products"`
}
