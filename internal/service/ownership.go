package service

import "engineer_connect_backend/internal/model"

// OwnershipResolver decides whether an identity may manage a problem.
type OwnershipResolver interface {
	OwnsProblem(identity *model.User, problem *model.Problem) bool
}

// ProblemOwnership grants admins everything and companies their own problems.
type ProblemOwnership struct{}

func (ProblemOwnership) OwnsProblem(identity *model.User, problem *model.Problem) bool {
	if identity == nil || problem == nil {
		return false
	}
	switch identity.Role {
	case model.Admin:
		return true
	case model.Company:
		return problem.OwnerID == identity.ID
	default:
		return false
	}
}
