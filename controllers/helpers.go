package controllers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/apperror"
	"storefront/logger"
	"storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)
	if kind == apperror.KindInternal || kind == apperror.KindExternalService {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"error", err,
			"route", c.FullPath(),
		)
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Success: false,
		Message: apperror.MessageOf(err),
		Code:    string(kind),
	})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

// bindJSON decodes the body into req and runs its binding rules. Unknown
// fields are rejected by the router-wide decoder setting.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Validation(bindingMessage(err))
	}
	return nil
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return "invalid request body: " + err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}

func paramID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, apperror.Validation("invalid " + name)
	}
	return id, nil
}

func currentUserID(c *gin.Context) int {
	return c.GetInt("user_id")
}
