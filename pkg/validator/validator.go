package validator

import (
	"log"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("rating", ratingValidator)
		if err != nil {
			log.Fatal("register rating validator failed")
		}
	}
}

// ratingValidator bounds a review rating to the 1-5 range accepted by the
// input layer. The aggregation layer still treats stored ratings
// defensively; this only guards new input.
var ratingValidator validator.Func = func(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= 1 && rating <= 5
}
