package config

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/refcheck/internal/foundation/errors"
)

// ErrNoPaths is returned when a run is started without any input path.
var ErrNoPaths = errors.ConfigError("no input paths specified").Build()

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:?$`)

func newValidator() *validator.Validate {
	validate := validator.New()

	// URI scheme names, optionally written with their trailing colon.
	_ = validate.RegisterValidation("scheme", func(fl validator.FieldLevel) bool {
		return schemeRe.MatchString(fl.Field().String())
	})

	return validate
}

// Validate checks field constraints. It does not require paths; see Check.
func (s Settings) Validate() error {
	err := newValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.WrapError(err, errors.CategoryConfig, "invalid settings").Fatal().Build()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.ConfigError("invalid settings: " + strings.Join(msgs, "; ")).Build()
}

// Check returns ErrNoPaths or the validation error that makes the settings unusable.
func (s Settings) Check() error {
	if len(s.Paths) == 0 {
		return ErrNoPaths
	}
	return s.Validate()
}
