package zerologger

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate    *validator.Validate
	validateErr error
	once        sync.Once
)

func configValidator() (*validator.Validate, error) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validateErr = validate.RegisterValidation("safe_reldir", safeRelDir)
	})
	return validate, validateErr
}

// safeRelDir accepts relative paths that stay inside the working directory.
func safeRelDir(fl validator.FieldLevel) bool {
	dir := fl.Field().String()
	if dir == emptyString {
		return true
	}
	if filepath.IsAbs(dir) || strings.HasPrefix(dir, "/") {
		return false
	}
	clean := filepath.Clean(dir)
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

func validateConfig(cfg *Config) error {
	const op errors.Op = "zerologger.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	v, err := configValidator()
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgValidator)
	}

	if err = v.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	return nil
}
