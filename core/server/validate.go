package server

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindError describes a request body that could not be parsed or validated.
type BindError struct {
	Message string
	Fields  map[string]string
}

func (e *BindError) Error() string {
	return e.Message
}

// Write sends the 400 envelope for the error.
func (e *BindError) Write(c *fiber.Ctx) error {
	body := fiber.Map{
		"success": false,
		"error":   e.Message,
	}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// BindAndValidate parses the JSON body into out and runs its `validate` tags.
func BindAndValidate(c *fiber.Ctx, out any) *BindError {
	if err := c.BodyParser(out); err != nil {
		return &BindError{Message: "invalid request body"}
	}

	err := validate.Struct(out)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &BindError{Message: err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		messages = append(messages, msg)
	}
	sort.Strings(messages)

	return &BindError{Message: strings.Join(messages, "; "), Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
