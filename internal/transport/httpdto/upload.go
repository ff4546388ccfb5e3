package httpdto

// UploadAvatarRequest is used for POST /v1/upload. File is base64, optionally a data URL.
type UploadAvatarRequest struct {
	File string `json:"file"`
	Type string `json:"type"`
}

type UploadAvatarResponse struct {
	URL string `json:"url"`
}
