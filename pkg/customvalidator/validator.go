package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"vessel-orders/internal/authz"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations installs the project rules on v. orgDomain backs
// the "org_email" tag.
func RegisterCustomValidations(v *validator.Validate, orgDomain string) error {
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("org_email", orgEmail(orgDomain)); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("priority", isPriority); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func orgEmail(domain string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		id := authz.Identity{Email: fl.Field().String()}
		return id.HasEmailDomain(domain)
	}
}

func isOrderStatus(fl validator.FieldLevel) bool {
	_, err := authz.ParseStatus(fl.Field().String())
	return err == nil
}

var priorities = []string{"LOW", "MEDIUM", "HIGH", "URGENT"}

func isPriority(fl validator.FieldLevel) bool {
	p := strings.ToUpper(fl.Field().String())
	for _, known := range priorities {
		if p == known {
			return true
		}
	}
	return false
}
