package domain

import "errors"

var (
	ErrInstituteNotFound = errors.New("institute not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrUnsupportedSource = errors.New("unsupported record source")
	ErrReadOnlySource    = errors.New("record source is read-only")
)
