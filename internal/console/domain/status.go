package domain

// Teacher-application review states.
const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// Back-office user account states.
const (
	UserActive   = "ACTIVE"
	UserInactive = "INACTIVE"
)
