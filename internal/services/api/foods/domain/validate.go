package domain

import "babyfood/internal/platform/net/http/bind"

func init() {
	_ = bind.RegisterTag("food_category", func(fl bind.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := ParseCategory(s)
		return ok
	}, "{0} must be one of fruit, veggie, grain, protein, dairy, snack, other")
}
