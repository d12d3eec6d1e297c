package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/ariebrainware/pilates-studio/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorErr  error

	// nowFunc is the clock used by the date rules.
	nowFunc = time.Now
)

// RegisterValidators installs the custom binding rules on gin's validator engine:
// isodate, clocktime, futureorpresent, pastorpresent, and the end-after-start
// check for time slots. Field names in errors follow the json tags.
func RegisterValidators() error {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorErr = errors.New("unexpected validator engine")
			return
		}
		validatorErr = registerOn(v)
	})
	return validatorErr
}

func registerOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"isodate":         isISODate,
		"clocktime":       isClockTime,
		"futureorpresent": isFutureOrPresent,
		"pastorpresent":   isPastOrPresent,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}

	v.RegisterStructValidation(scheduleSlotValidation, model.ScheduleRequest{})
	v.RegisterStructValidation(workingHoursSlotValidation, model.WorkingHoursRequest{})
	return nil
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := ParseISODate(fl.Field().String())
	return err == nil
}

func isClockTime(fl validator.FieldLevel) bool {
	_, err := NormalizeClock(fl.Field().String())
	return err == nil
}

func isFutureOrPresent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := ParseISODate(s); err != nil {
		return false
	}
	return s >= Today(nowFunc())
}

func isPastOrPresent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := ParseISODate(s); err != nil {
		return false
	}
	return s <= Today(nowFunc())
}

// endAfterStart reports false only when both times parse and end is not later than start.
func endAfterStart(start, end string) bool {
	s, err1 := NormalizeClock(start)
	e, err2 := NormalizeClock(end)
	if err1 != nil || err2 != nil {
		return true
	}
	return e > s
}

func scheduleSlotValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.ScheduleRequest)
	if !endAfterStart(req.StartTime, req.EndTime) {
		sl.ReportError(req.EndTime, "endTime", "EndTime", "aftertime", "startTime")
	}
}

func workingHoursSlotValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.WorkingHoursRequest)
	if !endAfterStart(req.StartTime, req.EndTime) {
		sl.ReportError(req.EndTime, "endTime", "EndTime", "aftertime", "startTime")
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "email":
		return "must be a well-formed email address"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("size must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("size must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "isodate":
		return "must be a date in format YYYY-MM-DD"
	case "clocktime":
		return "must be a time in format HH:MM or HH:MM:SS"
	case "futureorpresent":
		return "must be a date in the present or in the future"
	case "pastorpresent":
		return "must be a date in the past or in the present"
	case "aftertime":
		return fmt.Sprintf("must be after %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// BindingErrorDetails turns a ShouldBindJSON error into "field: message" entries.
func BindingErrorDetails(err error) []string {
	var serrs binding.SliceValidationError
	if errors.As(err, &serrs) {
		var details []string
		for _, e := range serrs {
			details = append(details, BindingErrorDetails(e)...)
		}
		return details
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: %s", fieldPath(fe), fieldMessage(fe)))
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: must be of type %s", typeErr.Field, typeErr.Type.String())}
	}
	if errors.Is(err, io.EOF) {
		return []string{"body: must not be empty"}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"body: malformed JSON"}
	}
	return []string{fmt.Sprintf("body: %s", err.Error())}
}
