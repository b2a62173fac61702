package types

import "campus-notice-board/app/server/validator"

type ErrorMessage struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}
