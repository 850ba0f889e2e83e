package api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

type dayQuery struct {
	Date string `query:"date" validate:"required,datetime=2006-01-02"`
	Hour *int   `query:"hour" validate:"omitempty,min=0,max=23"`
}

type rangeQuery struct {
	Start string `query:"start" validate:"required,datetime=2006-01-02"`
	End   string `query:"end" validate:"required,datetime=2006-01-02"`
}

type solarQuery struct {
	Day   int `query:"day" validate:"required,min=1,max=30"`
	Month int `query:"month" validate:"required,min=1,max=12"`
	Year  int `query:"year" validate:"required,min=1,max=9999"`
}

type occurrenceQuery struct {
	Frequency string `query:"frequency" validate:"required,oneof=yearly monthly"`
	Day       int    `query:"day" validate:"required,min=1,max=30"`
	Month     int    `query:"month" validate:"min=0,max=12,required_if=Frequency yearly"`
	From      string `query:"from" validate:"required,datetime=2006-01-02"`
	To        string `query:"to" validate:"required,datetime=2006-01-02"`
	Start     string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	Interval  int    `query:"interval" validate:"min=0,max=100"`
	Count     int    `query:"count" validate:"min=0,max=1000"`
	Format    string `query:"format" validate:"omitempty,oneof=json ics"`
	Name      string `query:"name" validate:"max=200"`
}

type monthQuery struct {
	Month int `query:"month" validate:"required,min=1,max=12"`
}

// queryInt reads an optional integer parameter into dst.
func queryInt(q url.Values, key string, dst *int) error {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer", key)
	}
	*dst = n
	return nil
}

func queryBool(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required" || fe.Tag() == "required_if":
			msgs = append(msgs, fe.Field()+" is required")
		case fe.Tag() == "datetime":
			msgs = append(msgs, fe.Field()+" must be a date in YYYY-MM-DD format")
		case fe.Param() != "":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
