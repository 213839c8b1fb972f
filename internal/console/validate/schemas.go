package validate

import (
	"fmt"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
)

// Login is the sign-in payload.
type Login struct {
	Email    string
	Password string
}

// ValidateAndSanitize sanitizes the payload in place and returns a
// ValidationError aggregating every violation, or nil.
func (l *Login) ValidateAndSanitize() error {
	l.Email = Sanitize(l.Email)
	l.Password = Sanitize(l.Password)

	errs := make(map[string]string)
	checkEmail(errs, "email", l.Email, true)

	switch {
	case l.Password == "":
		errs["password"] = requiredReason
	case len(l.Password) < MinPasswordLen:
		errs["password"] = fmt.Sprintf("too short (min %d)", MinPasswordLen)
	case len(l.Password) > MaxPasswordLen:
		errs["password"] = fmt.Sprintf("too long (max %d)", MaxPasswordLen)
	}

	return fold(errs)
}

// Pagination is the page/size pair attached to every search.
// Page indexes are zero-based.
type Pagination struct {
	Page int
	Size int
}

func (p *Pagination) ValidateAndSanitize() error {
	errs := make(map[string]string)

	if p.Page < 0 {
		errs["page"] = "must be >= 0"
	}
	if p.Size < MinPageSize || p.Size > MaxPageSize {
		errs["size"] = fmt.Sprintf("must be between %d and %d", MinPageSize, MaxPageSize)
	}

	return fold(errs)
}

// ApplicationSearch is the criteria shape for the applications screen.
// All fields are optional; the server ANDs the present ones.
type ApplicationSearch struct {
	FullName      string
	Email         string
	TeachingField string
	Status        string
}

func (s *ApplicationSearch) ValidateAndSanitize() error {
	s.FullName = Sanitize(s.FullName)
	s.Email = Sanitize(s.Email)
	s.TeachingField = Sanitize(s.TeachingField)
	s.Status = Sanitize(s.Status)

	errs := make(map[string]string)
	checkName(errs, "fullName", s.FullName)
	checkEmail(errs, "email", s.Email, false)
	checkName(errs, "teachingField", s.TeachingField)
	checkEnum(errs, "status", s.Status,
		domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected)

	return fold(errs)
}

// UserSearch is the criteria shape for the users screen.
type UserSearch struct {
	FirstName string
	Email     string
	Roles     string
	Status    string
}

func (s *UserSearch) ValidateAndSanitize() error {
	s.FirstName = Sanitize(s.FirstName)
	s.Email = Sanitize(s.Email)
	s.Roles = Sanitize(s.Roles)
	s.Status = Sanitize(s.Status)

	errs := make(map[string]string)
	checkName(errs, "firstName", s.FirstName)
	checkEmail(errs, "email", s.Email, false)
	checkEnum(errs, "roles", s.Roles,
		domain.RoleAdmin, domain.RoleTeacher, domain.RoleStudent)
	checkEnum(errs, "status", s.Status, domain.UserActive, domain.UserInactive)

	return fold(errs)
}

// RoleAssignment adds or removes one role on one user.
type RoleAssignment struct {
	UserID string
	Role   string
}

func (a *RoleAssignment) ValidateAndSanitize() error {
	a.UserID = Sanitize(a.UserID)
	a.Role = Sanitize(a.Role)

	errs := make(map[string]string)
	checkID(errs, "userId", a.UserID)
	if a.Role == "" {
		errs["role"] = requiredReason
	} else {
		checkEnum(errs, "role", a.Role,
			domain.RoleAdmin, domain.RoleTeacher, domain.RoleStudent)
	}

	return fold(errs)
}

// Application review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionRead    = "read"
	ActionDelete  = "delete"
)

// ApplicationAction is one review operation on one application.
// Reject carries a mandatory free-text message shown to the applicant.
type ApplicationAction struct {
	ID      string
	Action  string
	Message string
}

func (a *ApplicationAction) ValidateAndSanitize() error {
	a.ID = Sanitize(a.ID)
	a.Action = Sanitize(a.Action)
	a.Message = Sanitize(a.Message)

	errs := make(map[string]string)
	checkID(errs, "id", a.ID)

	switch a.Action {
	case "":
		errs["action"] = requiredReason
	case ActionApprove, ActionReject, ActionRead, ActionDelete:
	default:
		errs["action"] = "must be one of approve, reject, read, delete"
	}

	if a.Action == ActionReject && a.Message == "" {
		errs["message"] = "required when rejecting"
	}
	if len(a.Message) > MaxMessageLength {
		errs["message"] = fmt.Sprintf("too long (max %d)", MaxMessageLength)
	}

	return fold(errs)
}

// CertificateSearch is the criteria shape for the certificates screen.
type CertificateSearch struct {
	FullName   string
	Email      string
	CourseName string
}

func (s *CertificateSearch) ValidateAndSanitize() error {
	s.FullName = Sanitize(s.FullName)
	s.Email = Sanitize(s.Email)
	s.CourseName = Sanitize(s.CourseName)

	errs := make(map[string]string)
	checkName(errs, "fullName", s.FullName)
	checkEmail(errs, "email", s.Email, false)
	checkName(errs, "courseName", s.CourseName)

	return fold(errs)
}

// PaymentSearch is the criteria shape shared by the payments and
// teacher-payments screens. Status values are server-defined, so only
// sanitization and ceilings apply.
type PaymentSearch struct {
	Email  string
	Status string
}

func (s *PaymentSearch) ValidateAndSanitize() error {
	s.Email = Sanitize(s.Email)
	s.Status = Sanitize(s.Status)

	errs := make(map[string]string)
	checkEmail(errs, "email", s.Email, false)
	checkName(errs, "status", s.Status)

	return fold(errs)
}

// FreeText is a sanitized free-form field, used for payment description
// updates. Sanitization only, plus the shared length ceiling.
type FreeText struct {
	Value string
}

func (f *FreeText) ValidateAndSanitize() error {
	f.Value = Sanitize(f.Value)

	errs := make(map[string]string)
	if len(f.Value) > MaxMessageLength {
		errs["value"] = fmt.Sprintf("too long (max %d)", MaxMessageLength)
	}
	return fold(errs)
}
