package services

// ErrorKind classifies an expected business-rule violation. Anything a
// service returns that is not a *services.Error is an infrastructure
// failure and is not part of this taxonomy.
type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota
	KindNotFound
	KindAccessDenied
	KindConflict
)

// Error is the single error type services use for expected violations.
// Code is a stable machine-readable identifier; Message is human-readable.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

func unauthenticated(code, message string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code, Message: message}
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func accessDenied(code, message string) *Error {
	return &Error{Kind: KindAccessDenied, Code: code, Message: message}
}

func conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

var (
	ErrUnauthenticated = unauthenticated("UNAUTHENTICATED", "authentication required")

	ErrProjectNotFound     = notFound("PROJECT_NOT_FOUND", "project not found")
	ErrTaskNotFound        = notFound("TASK_NOT_FOUND", "task not found")
	ErrInviteNotFound      = notFound("INVITE_NOT_FOUND", "invite not found")
	ErrInvitedUserNotFound = notFound("INVITED_USER_NOT_FOUND", "invited user not found")
	ErrMemberNotFound      = notFound("MEMBER_NOT_FOUND", "user not found")

	ErrAccessDenied = accessDenied("ACCESS_DENIED", "access denied")

	ErrUserAlreadyInvited       = conflict("USER_ALREADY_INVITED", "user has already been invited to this project")
	ErrInvitedUserAlreadyMember = conflict("USER_ALREADY_A_MEMBER", "user is already a participant of this project")
	ErrInviteAlreadyAccepted    = conflict("INVITE_ALREADY_ACCEPTED", "invite has already been accepted")
	ErrInviteAlreadyRejected    = conflict("INVITE_ALREADY_REJECTED", "invite has already been rejected")
	ErrStatusAlreadySet         = conflict("STATUS_ALREADY_SET", "task already has this status")
	ErrMemberAlreadyHasRole     = conflict("MEMBER_ALREADY_HAS_THIS_ROLE", "member already has this role")
	ErrUserIsNotAProjectMember  = conflict("USER_IS_NOT_A_PROJECT_MEMBER", "user is not a member of this project")
)
