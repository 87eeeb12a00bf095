package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/judgegodwins/wordle-duel/util"
	"github.com/samber/lo"
)

var ErrInvalidPayload = errors.New("invalid payload")

// decodePayload unmarshals the event payload into v and validates it.
func decodePayload(evt Event, v any) error {
	if len(evt.Payload) == 0 {
		return fmt.Errorf("%w: payload required", ErrInvalidPayload)
	}

	if err := json.Unmarshal(evt.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := util.Validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		messages := lo.Map(fieldErrs, func(item validator.FieldError, _ int) string {
			return item.Error()
		})

		return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(messages, "; "))
	}

	return nil
}
