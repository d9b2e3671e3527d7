package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"vetvox-be/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// ValidationError so the error middleware answers 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperrors.Validation("invalid request: %s", strings.Join(fields, ", "))
		}
		return apperrors.Validation("invalid request")
	}
	return nil
}
