// Package validation provides struct tag validation for configuration types.
//
// Validation rules are declared as `validate` tags on struct fields and
// checked with the validator library. Field names in error messages follow
// the mapstructure or json tag when present.
//
// # Usage
//
//	type Config struct {
//	    BaseURL string        `mapstructure:"base_url" validate:"required,url"`
//	    Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
//	}
//	if err := validation.Validate(cfg); err != nil {
//	    var verr *validation.Error
//	    if errors.As(err, &verr) {
//	        for _, f := range verr.Fields {
//	            log.Printf("%s %s", f.Field, f.Message)
//	        }
//	    }
//	}
package validation
