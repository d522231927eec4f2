package floorplan

import "errors"

var (
	ErrSectionExists  = errors.New("section already exists")
	ErrTableExists    = errors.New("table already exists")
	ErrTableNotFound  = errors.New("table not found")
	ErrInvalidSection = errors.New("invalid section")
	ErrInvalidTable   = errors.New("invalid table")
	ErrInvalidStatus  = errors.New("invalid table status")
)
