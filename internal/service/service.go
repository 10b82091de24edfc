package service

import (
	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/metrics"
)

// observe учитывает результат операции в метриках
func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperror.KindOf(err))
	}
	metrics.Observe(operation, result)
}
