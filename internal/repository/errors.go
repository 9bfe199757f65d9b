package repository

import "errors"

// ErrInvalid возвращается при попытке сохранить заведомо пустые данные.
var ErrInvalid = errors.New("invalid input")
