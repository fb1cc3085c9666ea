package domain

// EscalationLevel indicates how far up the management chain a stalled file has
// been reassigned.
type EscalationLevel string

const (
	EscalationNone   EscalationLevel = "NONE"
	EscalationLevel1 EscalationLevel = "LEVEL1" // 3-5 days - Reporting Manager
	EscalationLevel2 EscalationLevel = "LEVEL2" // 6-8 days - Department Head
	EscalationLevel3 EscalationLevel = "LEVEL3" // 9-11 days - Finance Head
	EscalationLevel4 EscalationLevel = "LEVEL4" // 12+ days - CFO/CEO
)

// EscalationLevelForElapsedDays maps the number of days a file has been pending
// since submission to an escalation level. The result is monotonically
// non-decreasing in days, with breakpoints at 3, 6, 9 and 12.
func EscalationLevelForElapsedDays(days int) EscalationLevel {
	switch {
	case days >= 12:
		return EscalationLevel4
	case days >= 9:
		return EscalationLevel3
	case days >= 6:
		return EscalationLevel2
	case days >= 3:
		return EscalationLevel1
	default:
		return EscalationNone
	}
}

var escalationRoles = map[EscalationLevel]UserRole{
	EscalationLevel1: RoleReportingManager,
	EscalationLevel2: RoleDepartmentHead,
	EscalationLevel3: RoleFinanceHead,
	EscalationLevel4: RoleCfoCeo,
}

// AuthorizedRoleForLevel returns the management role that owns files escalated
// to the given level. The second return value is false for EscalationNone,
// which has no owning role; callers must fall back to the file's CurrentRole.
func AuthorizedRoleForLevel(level EscalationLevel) (UserRole, bool) {
	role, ok := escalationRoles[level]
	return role, ok
}

// EscalationLevelForRole is the inverse of AuthorizedRoleForLevel: it returns
// the level whose files the given escalation-chain role is responsible for.
func EscalationLevelForRole(role UserRole) (EscalationLevel, bool) {
	for level, r := range escalationRoles {
		if r == role {
			return level, true
		}
	}
	return EscalationNone, false
}
