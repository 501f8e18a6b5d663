package credit

// Status represents the lifecycle status of a credit
type Status string

const (
	StatusActive    Status = "activo"
	StatusPaid      Status = "pagado"
	StatusCancelled Status = "cancelado"
	StatusOverdue   Status = "mora"
)

// AllStatuses lists credit statuses in display order
func AllStatuses() []Status {
	return []Status{StatusActive, StatusPaid, StatusCancelled, StatusOverdue}
}

// IsValid checks if the status is a valid credit Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPaid, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// InstallmentStatus represents the state of one installment
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pendiente"
	InstallmentPaid    InstallmentStatus = "pagada"
	InstallmentOverdue InstallmentStatus = "vencida"
)

// AllInstallmentStatuses lists installment statuses in display order
func AllInstallmentStatuses() []InstallmentStatus {
	return []InstallmentStatus{InstallmentPending, InstallmentPaid, InstallmentOverdue}
}

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentPending, InstallmentPaid, InstallmentOverdue:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}
