package dto

import "mime/multipart"

// UploadResumeRequest - multipart: file + displayName
type UploadResumeRequest struct {
	DisplayName string                `form:"displayName" json:"displayName"`
	File        *multipart.FileHeader `form:"-" json:"-"`
}
