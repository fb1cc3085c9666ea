package domain

// UserRole identifies which part of the approval pipeline a user acts for.
type UserRole string

const (
	RoleSales                 UserRole = "SALES"
	RoleChecker               UserRole = "CHECKER"
	RoleOnboardingManager     UserRole = "ONBOARDING_MANAGER"
	RolePaymentSupportManager UserRole = "PAYMENT_SUPPORT_MANAGER"
	RoleReportingManager      UserRole = "REPORTING_MANAGER"
	RoleDepartmentHead        UserRole = "DEPARTMENT_HEAD"
	RoleFinanceHead           UserRole = "FINANCE_HEAD"
	RoleCfoCeo                UserRole = "CFO_CEO"
)

// AllRoles lists every role known to the system, in pipeline-then-escalation order.
var AllRoles = []UserRole{
	RoleSales,
	RoleChecker,
	RoleOnboardingManager,
	RolePaymentSupportManager,
	RoleReportingManager,
	RoleDepartmentHead,
	RoleFinanceHead,
	RoleCfoCeo,
}

var roleDisplayNames = map[UserRole]string{
	RoleSales:                 "Sales",
	RoleChecker:               "Checker",
	RoleOnboardingManager:     "Onboarding Manager",
	RolePaymentSupportManager: "Payment Support Manager",
	RoleReportingManager:      "Reporting Manager",
	RoleDepartmentHead:        "Department Head",
	RoleFinanceHead:           "Finance Head",
	RoleCfoCeo:                "CFO/CEO",
}

// DisplayName returns the human readable name for the role.
func (r UserRole) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return "Unknown"
}

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

// IsEscalationChainRole reports whether the role participates in the escalation
// override chain rather than owning a pipeline stage.
func (r UserRole) IsEscalationChainRole() bool {
	switch r {
	case RoleReportingManager, RoleDepartmentHead, RoleFinanceHead, RoleCfoCeo:
		return true
	}
	return false
}
