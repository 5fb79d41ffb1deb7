package domain

import (
	"reflect"
	"testing"

	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/net/http/bind"
)

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{"other"}},
		{"blanks only", []string{" ", ""}, []string{"other"}},
		{"lower cases", []string{"Fruit", "VEGGIE"}, []string{"fruit", "veggie"}},
		{"dedupes in order", []string{"dairy", "fruit", "Dairy"}, []string{"dairy", "fruit"}},
		{"unknown becomes other once", []string{"candy", "fruit", "cake"}, []string{"other", "fruit"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeCategories(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeCategories(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFoodCategoryTag(t *testing.T) {
	if err := bind.Validate(ListInput{Category: "Fruit"}); err != nil {
		t.Fatalf("valid category: %v", err)
	}
	if err := bind.Validate(ListInput{}); err != nil {
		t.Fatalf("empty category: %v", err)
	}
	err := bind.Validate(ListInput{Category: "candy"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "category" {
		t.Fatalf("field = %q", e.Field())
	}
}
