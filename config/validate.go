package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/docker/go-units"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	namespaceSeparator = "."
	emptyTagName       = "-"
	requiredTagName    = "required"
	requiredIfTagName  = "required_if"
)

// Validate checks the configuration and returns a config error describing every invalid field.
func Validate(cfg *Config) error {
	validate, trans, err := getValidator()
	if err != nil {
		return errs.Config("initializing validator", err)
	}
	if err := validateStruct(validate, trans, cfg); err != nil {
		return errs.Config("invalid configuration", err)
	}

	invalid := &errs.ErrInvalidConf{Message: "Invalid values provided for the following fields:\n"}
	if _, err := units.FromHumanSize(cfg.MaxReportSize); err != nil {
		invalid.Fields = append(invalid.Fields, "max_report_size")
		invalid.Values = append(invalid.Values, cfg.MaxReportSize)
	}
	if cfg.Source == core.SourceXcov && cfg.Workspace != "" && cfg.Project != "" {
		invalid.Fields = append(invalid.Fields, "project")
		invalid.Values = append(invalid.Values, "workspace and project are mutually exclusive")
	}
	if cfg.UsesGitHub() {
		if cfg.GitHub.Token == "" {
			invalid.Fields = append(invalid.Fields, "github.token")
			invalid.Values = append(invalid.Values, "required when talking to GitHub")
		}
		if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
			invalid.Fields = append(invalid.Fields, "github.repo")
			invalid.Values = append(invalid.Values, fmt.Sprintf("%q/%q", cfg.GitHub.Owner, cfg.GitHub.Repo))
		}
		if cfg.GitHub.PullRequest <= 0 {
			invalid.Fields = append(invalid.Fields, "github.pull_request")
			invalid.Values = append(invalid.Values, cfg.GitHub.PullRequest)
		}
	}
	if cfg.Archive.Enabled && cfg.UsesAzure() && cfg.Archive.Azure.StorageAccessKey == "" {
		invalid.Fields = append(invalid.Fields, "archive.azure.storage_access_key")
		invalid.Values = append(invalid.Values, "required with archive.azure.storage_account")
	}
	if len(invalid.Fields) > 0 {
		return errs.Config("invalid configuration", invalid)
	}
	return nil
}

func getValidator() (*validator.Validate, ut.Translator, error) {
	enObj := en.New()
	uni := ut.New(enObj, enObj)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}
	configureValidator(validate, trans)
	return validate, trans, nil
}

// configureValidator reports fields by their configuration key instead of the Go field name.
func configureValidator(validate *validator.Validate, trans ut.Translator) {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == emptyTagName || name == "" {
			return fld.Name
		}
		return name
	})
	for _, tag := range []string{requiredTagName, requiredIfTagName} {
		// nolint: errcheck
		validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, "{0} field is required!", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), keyOf(fe.Namespace()))
			return t
		})
	}
}

// keyOf strips the root struct name from a validator namespace.
func keyOf(namespace string) string {
	i := strings.Index(namespace, namespaceSeparator)
	return namespace[i+1:]
}

func validateStruct(validate *validator.Validate, trans ut.Translator, cfg interface{}) error {
	validateErr := validate.Struct(cfg)
	if validateErr == nil {
		return nil
	}
	validationErrs, ok := validateErr.(validator.ValidationErrors)
	if !ok {
		return validateErr
	}
	err := &errs.ErrInvalidConf{Message: "Invalid values provided for the following fields:\n"}
	for _, e := range validationErrs {
		err.Fields = append(err.Fields, keyOf(e.Namespace()))
		err.Values = append(err.Values, e.Translate(trans))
	}
	return err
}
