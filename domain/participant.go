// Package domain contains core concepts of the chat system.
// This file defines join requests and participant name invariants.
package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// JoinRequest carries the two identifiers a session needs to enter a room.
// Both become filesystem entries, hence the entryname rule.
type JoinRequest struct {
	Room string `validate:"required,max=64,entryname"`
	User string `validate:"required,max=64,entryname"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// A name must be usable as a single directory entry: no separators,
	// no NUL, not "." or "..".
	_ = v.RegisterValidation("entryname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "." || s == ".." {
			return false
		}
		return !strings.ContainsAny(s, "/\x00")
	})
	return v
}

func ValidateJoin(req JoinRequest) error {
	return validate.Struct(req)
}
