package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"fieldrep/internal/repository"
	"fieldrep/internal/service"
	"fieldrep/internal/session"
	"fieldrep/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps the form and repository error taxonomy onto HTTP.
func writeError(c *gin.Context, err error) {
	var verrs service.ValidationErrors
	var remote *repository.RemoteError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, response.Invalid(http.StatusUnprocessableEntity, verrs))
	case errors.Is(err, session.ErrIdentityMissing):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authentication required"))
	case errors.Is(err, service.ErrUnknownField), errors.Is(err, errBadField):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, repository.ErrDoctorNotFound), errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.As(err, &remote):
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "Record store unavailable: "+remote.Err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

type fieldSetter interface {
	SetField(name, value string) error
}

// formBody is a submitted form: field name to JSON value.
type formBody map[string]json.RawMessage

// apply feeds every scalar field to the form, type first and the rest in
// name order, so fields that depend on the type are never cleared by it.
// Fields listed in skip are left for the caller.
func (b formBody) apply(form fieldSetter, skip ...string) error {
	names := make([]string, 0, len(b))
	for name := range b {
		if !slices.Contains(skip, name) {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "type":
			return -1
		case b == "type":
			return 1
		}
		return strings.Compare(a, b)
	})
	for _, name := range names {
		value, err := scalar(b[name])
		if err != nil {
			return fmt.Errorf("%w: %s", errBadField, name)
		}
		if err := form.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

var errBadField = errors.New("field must be a string or number")

// scalar renders a JSON string, number or bool as form text; null is empty.
func scalar(raw json.RawMessage) (string, error) {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null":
		return "", nil
	case strings.HasPrefix(text, `"`):
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case strings.HasPrefix(text, "{"), strings.HasPrefix(text, "["):
		return "", errBadField
	}
	return text, nil
}
