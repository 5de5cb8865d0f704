package request

import (
	"errors"
	"fmt"
	"sync"

	"repairdesk/internal/domain/entities"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the domain tags to gin's validator engine.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("jobstatus", validateJobStatus); err != nil {
			return
		}
		err = v.RegisterValidation("qccheck", validateQCCheck)
	})
	return err
}

func validateJobStatus(fl validator.FieldLevel) bool {
	return entities.JobStatus(fl.Field().String()).Valid()
}

func validateQCCheck(fl validator.FieldLevel) bool {
	return entities.CheckResult(fl.Field().String()).Valid()
}

// FieldErrors flattens validator errors into field -> failed tag.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
