package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// qr_token -> Qr Token
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError mengubah error binding gin menjadi AppError yang
// pesannya bisa langsung ditampilkan di dashboard. Hanya error pertama
// yang dilaporkan.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "oneof":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be one of: %s", field, e.Param()), http.StatusBadRequest)
		case "min", "gte":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be at least %s", field, e.Param()), http.StatusBadRequest)
		case "max", "lte":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be at most %s", field, e.Param()), http.StatusBadRequest)
		case "datetime":
			return New(CodeInvalidInput, fmt.Sprintf("%s must match format %s", field, e.Param()), http.StatusBadRequest)
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeInvalidInput,
		"Input tidak valid",
		http.StatusBadRequest,
	)
}
