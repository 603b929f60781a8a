package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrRoleNotFound         = errors.New("role not found")
	ErrRoleExists           = errors.New("role already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrPasswordMismatch     = errors.New("new password and confirmation do not match")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSurveyTypeNotFound   = errors.New("survey type not found")
	ErrSurveyGroupNotFound  = errors.New("survey group not found")
	ErrSurveyGroupExists    = errors.New("survey group already exists")
	ErrSurveyNotFound       = errors.New("survey not found")
	ErrSurveyExists         = errors.New("survey already exists in group")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrAnswerExists         = errors.New("answer already exists in survey")
	ErrCorrectAnswerExists  = errors.New("survey already has a correct answer")
	ErrResultNotFound       = errors.New("result not found")
	ErrResultExists         = errors.New("result already exists for this user and survey")
	ErrValidation           = errors.New("validation failed")
	ErrStorageNotConfigured = errors.New("storage provider not configured")
	ErrExportEmpty          = errors.New("survey group has no results")
)
