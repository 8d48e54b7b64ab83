package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// Decoder decodes and validates JSON request bodies
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder creates a Decoder
func NewDecoder() *Decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Decoder{validate: v}
}

// Decode reads the request body into dst and validates it.
// An empty body is accepted only if dst has no required fields.
func (d *Decoder) Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apierr.NewInvalidRequestError("invalid request body")
	}

	if err := d.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return requiredError(jsonPath(verrs[0].Namespace()))
		}
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}

// requiredError classifies a missing field by what it carries
func requiredError(path string) error {
	kind := model.ErrValidation
	switch {
	case path == "name" || strings.HasSuffix(path, ".name"):
		kind = model.ErrNameRequired
	case path == "id" || strings.HasSuffix(path, ".id"):
		kind = model.ErrIDRequired
	}
	return &model.FieldError{Field: path, Err: kind}
}

// jsonPath turns a validator namespace such as "PlayerRequest.player.id"
// into "player.id"
func jsonPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
