package models

// ProposalStatus константы статусов предложений
const (
	ProposalStatusDraft      = "draft"
	ProposalStatusInProgress = "in_progress"
	ProposalStatusCompleted  = "completed"
	ProposalStatusWon        = "won"
	ProposalStatusLost       = "lost"
)

// CollaboratorPermission константы уровней доступа соавторов
const (
	PermissionView  = "view"
	PermissionEdit  = "edit"
	PermissionAdmin = "admin"
)

// ValidProposalStatuses список валидных статусов предложений
var ValidProposalStatuses = map[string]struct{}{
	ProposalStatusDraft:      {},
	ProposalStatusInProgress: {},
	ProposalStatusCompleted:  {},
	ProposalStatusWon:        {},
	ProposalStatusLost:       {},
}

// ValidPermissions список валидных уровней доступа
var ValidPermissions = map[string]struct{}{
	PermissionView:  {},
	PermissionEdit:  {},
	PermissionAdmin: {},
}
