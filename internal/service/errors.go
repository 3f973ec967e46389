package service

import "errors"

// 错误分类：校验错 → 400，找不到 → 404，凭证错 → 401，其余 → 500。
// handler 层只按这几类翻译状态码，不关心具体业务。

var (
	ErrNotFound    = errors.New("not found")
	ErrBadPassword = errors.New("invalid credentials")
)

type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func Invalid(msg string) error { return &ValidationError{msg: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
