package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/snnyvrz/library-api/internal/response"
)

const invalidBody = "Invalid request body"

var registerOnce sync.Once

// useJSONNames makes validator report fields by their json tag, so messages
// name "authorId" rather than "AuthorID".
func useJSONNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindAndValidateJSON binds the request body into dst. An empty body binds as
// {}. On failure it writes a 400 envelope and returns false.
func BindAndValidateJSON(c *gin.Context, dst any) bool {
	useJSONNames()

	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err != nil {
		response.Error(c, http.StatusBadRequest, Message(err))
		return false
	}

	return true
}

// Message turns a binding error into a single client-facing sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, buildMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has an invalid type"
	}

	return invalidBody
}

func buildMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be " + fe.Param() + " characters or less"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
