package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hotel-reservation/apperror"
	"hotel-reservation/utils"
)

// HandleServiceError maps the error taxonomy onto HTTP statuses. Unexpected
// errors are logged and answered with their message only.
func HandleServiceError(ctx *gin.Context, err error) {
	var (
		validationErr *apperror.ValidationError
		businessErr   *apperror.BusinessRuleError
		notFoundErr   *apperror.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONValidationError(ctx, http.StatusBadRequest, validationErr.Fields)
	case errors.As(err, &businessErr):
		utils.JSONError(ctx, http.StatusConflict, businessErr.Message)
	case errors.As(err, &notFoundErr):
		utils.JSONError(ctx, http.StatusNotFound, notFoundErr.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.FullPath(),
		}).Error("unhandled internal server error")
		utils.JSONError(ctx, http.StatusInternalServerError, "unexpected error: "+err.Error())
	}
}

// handleBindError turns a gin binding failure into a field->message map.
func handleBindError(ctx *gin.Context, err error) {
	fields := map[string]string{}

	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		fields[field] = "has the wrong type, expected " + typeErr.Type.String()
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fields["body"] = "must be a valid JSON document"
	default:
		var verr *apperror.ValidationError
		if errors.As(err, &verr) {
			fields = verr.Fields
		} else {
			fields["body"] = err.Error()
		}
	}
	utils.JSONValidationError(ctx, http.StatusBadRequest, fields)
}
