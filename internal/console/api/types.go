package api

// Wire types for the back-office REST API under /api/v1. Field names follow
// the backend's JSON contract; item ids are opaque strings on the wire.

// ============================================================================
// Auth
// ============================================================================

// SignInRequest is the POST /auth/sign-in payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the bearer token and enough profile data to render
// the signed-in header without a second round trip.
type SignInResponse struct {
	AccessToken string   `json:"accessToken"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"role"`
}

// ProfileResponse is the GET /auth/profile payload.
type ProfileResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Roles     []string `json:"role"`
}

// ============================================================================
// Paging
// ============================================================================

// Page is the server's paged envelope. Number is the zero-based page index.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// ============================================================================
// Teacher applications
// ============================================================================

// ApplicationSummary is one row of the applications screen.
type ApplicationSummary struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	TeachingField string `json:"teachingField"`
	Status        string `json:"status"`
	Read          bool   `json:"read"`
	CreatedAt     string `json:"createdAt"`
}

// ApplicationDetail is the richer variant fetched on demand.
type ApplicationDetail struct {
	ApplicationSummary
	Description   string `json:"description"`
	LinkedinURL   string `json:"linkedinUrl"`
	GithubURL     string `json:"githubUrl"`
	ReviewMessage string `json:"reviewMessage"`
}

// ============================================================================
// Users
// ============================================================================

type UserSummary struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	Status    string   `json:"status"`
}

type UserDetail struct {
	UserSummary
	CreatedAt   string `json:"createdAt"`
	LastLoginAt string `json:"lastLoginAt"`
}

// ============================================================================
// Certificates
// ============================================================================

type CertificateSummary struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	CourseName     string `json:"courseName"`
	IssuedAt       string `json:"issuedAt"`
	CertificateURL string `json:"certificateUrl"`
}

type CertificateDetail struct {
	CertificateSummary
	TeacherName string `json:"teacherName"`
	Grade       string `json:"grade"`
}

// ============================================================================
// Payments
// ============================================================================

type PaymentSummary struct {
	ID          string  `json:"id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
}

type PaymentDetail struct {
	PaymentSummary
	TransactionID string `json:"transactionId"`
	Method        string `json:"method"`
}

// TeacherPaymentSummary is one payout row on the teacher-payments screen.
type TeacherPaymentSummary struct {
	ID          string  `json:"id"`
	TeacherName string  `json:"teacherName"`
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Paid        bool    `json:"paid"`
	CreatedAt   string  `json:"createdAt"`
}

// ============================================================================
// Dashboard
// ============================================================================

type DashboardResponse struct {
	TotalApplications   int64   `json:"totalApplications"`
	PendingApplications int64   `json:"pendingApplications"`
	TotalUsers          int64   `json:"totalUsers"`
	TotalCertificates   int64   `json:"totalCertificates"`
	TotalPayments       float64 `json:"totalPayments"`
}

type ChartsResponse struct {
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
	PaymentsByMonth      []MonthlyAmount  `json:"paymentsByMonth"`
}

type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}
