package commission_report

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("commission_report: branch not found")

	// ErrPermissionDenied возвращается, когда пользователь не является менеджером филиала
	ErrPermissionDenied = errors.New("commission_report: permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commission_report: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commission_report: internal error")
)
