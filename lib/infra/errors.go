package infra

import "errors"

var (
	ErrNilElement           = errors.New("[xtree] nil or absent element")
	ErrEmptyStructure       = errors.New("[xtree] there is no element")
	ErrNotFound             = errors.New("[xtree] element not found")
	ErrIndexOutOfRange      = errors.New("[xtree] index out of range")
	ErrUnsupportedOperation = errors.New("[xtree] unsupported operation")
)
