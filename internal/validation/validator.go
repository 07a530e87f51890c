package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"qbank/internal/domain"
)

const (
	maxNameLength    = 100
	maxContentLength = 4000
	maxSelection     = 200
)

var (
	idPattern     = regexp.MustCompile(`^[0-9A-Za-z_-]{1,64}$`)
	prefixPattern = regexp.MustCompile(`^[0-9A-Z]{1,10}$`)
)

// Validator checks request shapes before they reach the services. Semantic
// checks such as node existence stay in the services.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID checks a path or body identifier.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !idPattern.MatchString(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// ValidateSelection checks each entry's kind and id. An empty selection is valid.
func (v *Validator) ValidateSelection(items []domain.SelectionItem) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(items) > maxSelection {
		errors = append(errors, domain.NewOutOfRangeError("selection", len(items), 0, maxSelection))
		return errors
	}
	for _, item := range items {
		if _, err := domain.ParseNodeType(string(item.Kind)); err != nil {
			errors = append(errors, domain.NewInvalidValueError("selection.kind", string(item.Kind),
				string(domain.NodeTypeTheme), string(domain.NodeTypeSubtheme), string(domain.NodeTypeGroup)))
		}
		errors = append(errors, v.ValidateID("selection.id", item.ID)...)
	}
	return errors
}

func (v *Validator) ValidateQuestionMode(mode string) domain.ValidationErrors {
	if _, err := domain.ParseQuestionMode(mode); err != nil {
		return domain.ValidationErrors{domain.NewInvalidValueError("questionMode", mode,
			string(domain.QuestionModeAll), string(domain.QuestionModeUnanswered),
			string(domain.QuestionModeIncorrect), string(domain.QuestionModeBookmarked))}
	}
	return nil
}

// ValidateCustomQuiz checks a quiz generation request. Sizes above the cap
// are clamped by the sampler, not rejected.
func (v *Validator) ValidateCustomQuiz(name, testMode, questionMode string, size int, selection []domain.SelectionItem) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, v.ValidateName("name", name)...)
	if _, err := domain.ParseTestMode(testMode); err != nil {
		errors = append(errors, domain.NewInvalidValueError("testMode", testMode,
			string(domain.TestModeStudy), string(domain.TestModeExam)))
	}
	errors = append(errors, v.ValidateQuestionMode(questionMode)...)
	if size < 1 {
		errors = append(errors, domain.ValidationError{Field: "size", Message: "must be at least 1", Value: size})
	}
	errors = append(errors, v.ValidateSelection(selection)...)
	return errors
}

// ValidateName checks a display name.
func (v *Validator) ValidateName(field, name string) domain.ValidationErrors {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field, n, 1, maxNameLength)}
	}
	return nil
}

// ValidateTaxonomyNode checks a create or rename request. prefix is optional.
func (v *Validator) ValidateTaxonomyNode(parentID, name, prefix string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if parentID != "" {
		errors = append(errors, v.ValidateID("parentId", parentID)...)
	}
	errors = append(errors, v.ValidateName("name", name)...)
	if p := strings.ToUpper(strings.TrimSpace(prefix)); p != "" && !prefixPattern.MatchString(p) {
		errors = append(errors, domain.NewInvalidFormatError("prefix", prefix))
	}
	return errors
}

func (v *Validator) ValidateQuestion(themeID, subthemeID, groupID, content string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, v.ValidateID("themeId", themeID)...)
	if subthemeID != "" {
		errors = append(errors, v.ValidateID("subthemeId", subthemeID)...)
	}
	if groupID != "" {
		errors = append(errors, v.ValidateID("groupId", groupID)...)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if n := utf8.RuneCountInString(content); n > maxContentLength {
		errors = append(errors, domain.NewOutOfRangeError("content", n, 1, maxContentLength))
	}
	return errors
}

// ValidateBatchSize accepts 0 as "use the configured default".
func (v *Validator) ValidateBatchSize(size int) domain.ValidationErrors {
	if size < 0 || size > 10000 {
		return domain.ValidationErrors{domain.NewOutOfRangeError("batchSize", size, 0, 10000)}
	}
	return nil
}
