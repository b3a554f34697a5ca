package dto

type UploadDTO struct {
	URL string `json:"url"`
}

type DeleteUploadDTO struct {
	URL string `json:"url" validate:"required,startswith=/uploads/"`
}
