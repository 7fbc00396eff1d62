// Package validation checks request structs against their `validate` tags
// before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// TitleTag is the custom tag for item titles.
const TitleTag = "itemtitle"

var (
	validate *validator.Validate
	once     sync.Once

	titleChars = regexp.MustCompile(`^[A-Za-z0-9 '\-_,.]+$`)

	// bannedWords are matched case-insensitively as substrings.
	bannedWords = []string{"badword"}
)

// ValidTitle reports whether s uses only allowed characters and contains no
// banned word. Length is checked separately by the min/max tags.
func ValidTitle(s string) bool {
	if !titleChars.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, w := range bannedWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// pointer fields are dereferenced by the validator before this runs
		_ = validate.RegisterValidation(TitleTag, func(fl validator.FieldLevel) bool {
			return ValidTitle(fl.Field().String())
		})
	})
	return validate
}

// Validate runs the struct tags of s. Failures wrap common.ErrorValidation
// and list every offending field.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, e.Field()+": "+message(e))
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(messages, "; "))
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case TitleTag:
		return "contains forbidden characters or words"
	default:
		return "is invalid"
	}
}
