package tenant

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"tveterp/core"
	"tveterp/core/nav"
)

var (
	allModulesTag  = "allmodules"
	allModulesText = "invalid modules"
)

// RegisterValidators registers the tenant package's custom validation tags on
// the given validator. The module catalogue backs the `allmodules` tag.
func RegisterValidators(validate *validator.Validate, translator ut.Translator, reg *nav.Registry) {
	_ = validate.RegisterValidation(allModulesTag, allModulesValidation(reg))
	core.RegisterCustomTranslation(validate, translator, allModulesTag, allModulesText)
}

// allModulesValidation checks that provided module ids all exist in the catalogue.
func allModulesValidation(reg *nav.Registry) validator.Func {
	return func(fl validator.FieldLevel) bool {
		mods, ok := fl.Field().Interface().([]string)
		if !ok {
			return false
		}
		for _, id := range mods {
			if _, ok := reg.ModuleByID(id); !ok {
				return false
			}
		}
		return true
	}
}
