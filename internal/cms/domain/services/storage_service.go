package services

import "errors"

// Ошибки хранилища изображений.
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrStoreFailed  = errors.New("failed to store file")
)

// Image - загружаемое изображение.
type Image struct {
	Filename    string
	ContentType string
	Content     []byte
}
