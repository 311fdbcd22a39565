package apierrors

// Process exit codes for the CLI boundary. Validation and not-found carry
// the codes fixed by the task domain; storage and other environment
// failures get their own class.
const (
	CodeOK         = 0
	CodeValidation = 1
	CodeNotFound   = 2
	CodeStorage    = 3
)

const (
	MsgValidationFailed = "validationFailed"
	MsgTaskNotFound     = "taskNotFound"
	MsgStorageFailure   = "storageFailure"
)
