package domain

// StageTransition describes one row of the approval pipeline: which role owns
// the stage and where an approval moves the file. Rejection from any stage
// moves the file to StatusRejected, so it is not part of the table.
type StageTransition struct {
	Status     FileStatus
	OwningRole UserRole
	NextStatus FileStatus
	NextRole   UserRole // Empty when NextStatus is terminal
	StageLabel string   // Human label used in activity details
}

// stageTransitions is the fixed linear pipeline. Adding a stage is a table
// edit, not a code change.
var stageTransitions = []StageTransition{
	{Status: StatusVerification, OwningRole: RoleChecker, NextStatus: StatusOnboarding, NextRole: RoleOnboardingManager, StageLabel: "Verification"},
	{Status: StatusOnboarding, OwningRole: RoleOnboardingManager, NextStatus: StatusPayment, NextRole: RolePaymentSupportManager, StageLabel: "Onboarding"},
	{Status: StatusPayment, OwningRole: RolePaymentSupportManager, NextStatus: StatusCompleted, NextRole: "", StageLabel: "Payment"},
}

// TransitionFor returns the pipeline row for the given status. ok is false for
// statuses outside the pending pipeline (DRAFT, SUBMITTED, terminal states).
func TransitionFor(status FileStatus) (StageTransition, bool) {
	for _, t := range stageTransitions {
		if t.Status == status {
			return t, true
		}
	}
	return StageTransition{}, false
}

// InitialStatus is the state a freshly created file is handed to, together with
// the role that owns it. Creation submits the file and immediately hands it to
// the checker for verification.
func InitialStatus() (FileStatus, UserRole) {
	return StatusVerification, RoleChecker
}
