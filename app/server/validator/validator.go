// Package validator 按请求类型上的 validate 标签校验请求体，所有字段都会检查，一次返回全部问题
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// FieldError 对应一个校验失败的字段，字段名和 JSON 中的一致
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator 同时满足 echo.Validator
type Validator struct {
	v *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// 使用 json 标签作为字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate 返回 nil 或 *ValidationError
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var errs playground.ValidationErrors
	if !errors.As(err, &errs) {
		// 传入的不是结构体，属于调用方的问题
		return fmt.Errorf("validate %T: %w", i, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fe.Field(),
			Reason: reason(fe),
		})
	}
	return out
}

// ValidateDecoded 校验一个只解码了一部分的请求体： typeErr 指出的字段已经确定有误，
// 其余字段照常校验，两边的错误合并返回
func (cv *Validator) ValidateDecoded(i interface{}, typeErr *FieldError) error {
	err := cv.Validate(i)
	if typeErr == nil {
		return err
	}

	var ve *ValidationError
	if err != nil && !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{Fields: []FieldError{*typeErr}}
	if ve != nil {
		for _, f := range ve.Fields {
			// 类型错误的字段保持零值，不再重复报告
			if f.Field != typeErr.Field {
				out.Fields = append(out.Fields, f)
			}
		}
	}
	return out
}

func reason(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

// TypeError 从解码错误中取出类型不对的字段，语法错误之类无法定位到字段的返回 nil
func TypeError(err error) *FieldError {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" || ute.Type == nil {
		return nil
	}
	return &FieldError{Field: ute.Field, Reason: typeReason(ute.Type)}
}

func typeReason(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.Slice, reflect.Array:
		return "must be an array"
	case reflect.Struct, reflect.Map:
		return "must be an object"
	default:
		return "must be of type " + t.String()
	}
}

// BodyError 表示请求体整体无法解码（比如 JSON 语法错误），和字段错误使用相同的格式
func BodyError(detail string) *ValidationError {
	msg := "must be a valid JSON object"
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return &ValidationError{Fields: []FieldError{{Field: "body", Reason: msg}}}
}
