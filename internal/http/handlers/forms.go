package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// userForm carries the fields of the create and edit pages. The original
// form posted the password under "senha"; both names are accepted.
type userForm struct {
	Name     string `form:"name"`
	Email    string `form:"email" binding:"omitempty,email"`
	Password string `form:"password"`
	Senha    string `form:"senha"`
}

func (f *userForm) password() string {
	if f.Password != "" {
		return f.Password
	}

	return f.Senha
}

// bindForm binds the posted form and turns binding failures into a message
// suitable for a flash. ok is false when the caller should redirect back.
func bindForm(ctx *gin.Context, out *userForm) (msg string, ok bool) {
	err := ctx.ShouldBind(out)

	if err == nil {
		return "", true
	}

	return formErrorMessage(err), false
}

func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors

	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))

		for _, fe := range verrs {
			parts = append(parts, strings.ToLower(fe.Field())+" "+validationMessage(fe.Tag(), fe.Param()))
		}

		return "Invalid input: " + strings.Join(parts, "; ") + "."
	}

	return "Invalid form submission."
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		return "failed " + rule + " validation"
	}
}
