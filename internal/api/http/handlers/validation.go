package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/user-admin-service/pkg/util/errorutil"
)

// newValidator reports failing fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateRequest(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// parseBody decodes an optional JSON body; an empty body leaves req untouched.
func parseBody(c *fiber.Ctx, req any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func pathID(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return id.String(), nil
}
