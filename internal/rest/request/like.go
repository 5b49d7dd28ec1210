package request

// Like is the body of POST and DELETE /api/likes
type Like struct {
	UploadID string `json:"uploadId"`
	UserID   string `json:"userId"`
}
