package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// business error code: [500000, 600000)
	ErrOpenCsv        = &ServiceError{500001, "open csv error"}
	ErrReadCsv        = &ServiceError{500002, "read csv error"}
	ErrParameter      = &ServiceError{500005, "invalid parameter"}
	ErrColumnNotExist = &ServiceError{500006, "column not exist"}
	ErrOpenDb         = &ServiceError{500007, "open database error"}
	ErrReadDb         = &ServiceError{500008, "read database error"}
	ErrTaskNotExist   = &ServiceError{500009, "task not exist"}
	ErrExport         = &ServiceError{500010, "export rules error"}
)
