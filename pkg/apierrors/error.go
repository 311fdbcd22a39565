package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"tasknest/internal/core/domain"
	"tasknest/pkg/translator"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{code, message}}
}

// FromError classifies err into its exit code and builds the caller-facing
// payload: a translated class label followed by the error detail.
func FromError(err error, lang string) JsonErr {
	code, msgKey := classify(err)
	label := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{code, fmt.Sprintf("%s: %s", label, err.Error())}}
}

// ExitCode maps err to the process exit code the CLI reports.
func ExitCode(err error) int {
	if err == nil {
		return CodeOK
	}
	code, _ := classify(err)
	return code
}

func classify(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return CodeValidation, MsgValidationFailed
	case domain.IsNotFound(err):
		return CodeNotFound, MsgTaskNotFound
	default:
		return CodeStorage, MsgStorageFailure
	}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	m := i18n.LocalizeConfig{}
	m.MessageID = msgKey
	msg, err := l.Localize(&m)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
