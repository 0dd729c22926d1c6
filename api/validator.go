package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

type validEnum interface {
	Valid() bool
}

// RegisterValidators adds the ledger's binding tags to gin's validator:
//
//	enum                 value's Valid() method reports true
//	positive_decimal     decimal.Decimal > 0
//	nonnegative_decimal  decimal.Decimal >= 0
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		rules := map[string]validator.Func{
			"enum":                validateEnum,
			"positive_decimal":    decimalRule(decimal.Decimal.IsPositive),
			"nonnegative_decimal": decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() }),
		}
		for tag, fn := range rules {
			if regErr := v.RegisterValidation(tag, fn); regErr != nil {
				err = fmt.Errorf("register %q: %w", tag, regErr)
				return
			}
		}
	})
	return err
}

func validateEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(validEnum)
	return ok && e.Valid()
}

func decimalRule(check func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && check(d)
	}
}
