package card

import "errors"

var (
	ErrNoImage      = errors.New("no image file uploaded")
	ErrUpload       = errors.New("blob store upload failed")
	ErrPersistence  = errors.New("card store operation failed")
	ErrEncode       = errors.New("code image generation failed")
	ErrCardNotFound = errors.New("card not found")
)
