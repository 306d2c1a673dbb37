package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a single resource: required identifying fields, well-formed
// references and property dependencies that name existing properties.
func Validate(r *Resource) error {
	if r == nil {
		return NewInvalidError("resource is nil", nil)
	}

	if r.URN == "" {
		return NewInvalidError("resource urn is required", nil).
			WithCode(ErrCodeMissingURN).
			WithField("urn")
	}

	if err := validate.Struct(r); err != nil {
		return validationError(r.URN, err)
	}

	// Sorted so the reported key is stable.
	keys := make([]string, 0, len(r.PropertyDependencies))
	for key := range r.PropertyDependencies {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := r.Properties[key]; !ok {
			return NewInvalidError(fmt.Sprintf("property dependency %q names a property that does not exist", key), nil).
				WithCode(ErrCodeUnknownProperty).
				WithURN(r.URN).
				WithField("propertyDependencies." + key)
		}
	}

	return nil
}

// ValidateStack validates every resource and rejects duplicate URNs. It does
// not require references to resolve: dangling references are reported by
// stack policies, not rejected.
func ValidateStack(resources []Resource) error {
	seen := make(map[string]int, len(resources))
	for i := range resources {
		if err := Validate(&resources[i]); err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
		urn := resources[i].URN
		if first, dup := seen[urn]; dup {
			return NewInvalidError(fmt.Sprintf("duplicate urn at resources[%d] and resources[%d]", first, i), nil).
				WithCode(ErrCodeDuplicateURN).
				WithURN(urn)
		}
		seen[urn] = i
	}
	return nil
}

func validationError(urn string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewInvalidError(fmt.Sprintf("field %s failed on the %q rule", fe.Namespace(), fe.Tag()), err).
			WithURN(urn).
			WithField(fe.Namespace())
	}
	return NewInvalidError("resource validation failed", err).WithURN(urn)
}
