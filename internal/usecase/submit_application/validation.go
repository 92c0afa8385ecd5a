package submit_application

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/pkg/validation"
)

const answersField = "answers"

// validateRequest проверяет обязательные поля запроса
func validateRequest(req *Request) error {
	verr := domain.NewValidationError()
	for field, msg := range validation.Struct(req) {
		verr.Add(field, msg)
	}

	if len(req.Answers) > 0 && !json.Valid(req.Answers) {
		verr.Add(answersField, "must be valid JSON")
	}

	return verr.OrNil()
}

// validateAnswers проверяет ответы кандидата по анкете вакансии
// Вакансия без анкеты принимает любые ответы
func validateAnswers(posting *eventservice.Posting, answers json.RawMessage) error {
	if !posting.HasQuestionnaire() {
		return nil
	}

	document := answers
	if len(document) == 0 {
		document = json.RawMessage(`{}`)
	}

	fields, err := validation.JSON(posting.QuestionnaireSchema, document)
	if err != nil {
		return fmt.Errorf("%w: posting id=%d questionnaire: %w", ErrInternal, posting.ID, err)
	}

	verr := domain.NewValidationError()
	for field, msg := range fields {
		if field == "(root)" {
			verr.Add(answersField, msg)
			continue
		}
		verr.Add(answersField+"."+field, msg)
	}
	return verr.OrNil()
}
