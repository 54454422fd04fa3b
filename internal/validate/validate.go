// Package validate provides precondition gates applied before any field is
// persisted or sent to the identity provider.
package validate

import (
	"strings"

	"github.com/fedblog/blog-server/internal/model"
)

// Input fails with an invalid-argument error when value is empty or composed
// entirely of whitespace. The field name is reported back to the caller.
func Input(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return model.NewErrInvalidArgument(field)
	}
	return nil
}
