package model

// Media upload lifecycle.
const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// MediaItem is a child item under the event partition recording one
// uploaded (or pending) file. The storage location fields are persisted so
// the object can be removed later, but never exposed on the wire.
type MediaItem struct {
	PK string `json:"-" dynamodbav:"PK"`
	SK string `json:"-" dynamodbav:"SK"`

	ID          string `json:"id" dynamodbav:"id"`
	URL         string `json:"url" dynamodbav:"url"`
	Type        string `json:"type" dynamodbav:"type"`
	UploadedBy  string `json:"uploadedBy" dynamodbav:"uploadedBy"`
	UploadedAt  string `json:"uploadedAt" dynamodbav:"uploadedAt"`
	Caption     string `json:"caption,omitempty" dynamodbav:"caption,omitempty"`
	S3Key       string `json:"-" dynamodbav:"s3Key"`
	S3Bucket    string `json:"-" dynamodbav:"s3Bucket"`
	ContentType string `json:"-" dynamodbav:"contentType"`
	FileName    string `json:"-" dynamodbav:"fileName"`

	// UploadStatus stays "pending" until the client confirms the upload.
	UploadStatus string `json:"-" dynamodbav:"uploadStatus"`
}

// CreateMediaRequest asks for a presigned upload slot.
type CreateMediaRequest struct {
	Type        string `json:"type" validate:"required,oneof=image video"`
	UploadedBy  string `json:"uploadedBy" validate:"required"`
	Caption     string `json:"caption,omitempty"`
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}
