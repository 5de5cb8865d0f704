package usecase

import "repairdesk/internal/domain/entities"

// canAdvance is the role matrix for moving a job out of its current status.
//
//	admin       any status
//	semiadmin   only out of unassigned
//	technician  only jobs bound to them, never out of unassigned
//	viewer      never
func canAdvance(role entities.Role, actorID string, job entities.Job) bool {
	switch role {
	case entities.RoleAdmin:
		return true
	case entities.RoleSemiAdmin:
		return job.Status == entities.JobStatusUnassigned
	case entities.RoleTechnician:
		return job.Status != entities.JobStatusUnassigned && job.TechnicianID != "" && job.TechnicianID == actorID
	}
	return false
}

func canAssign(role entities.Role) bool {
	return role == entities.RoleAdmin || role == entities.RoleSemiAdmin
}

// canView reports whether the actor may read the job. Technicians only see
// jobs bound to them.
func canView(role entities.Role, actorID string, job entities.Job) bool {
	if role == entities.RoleTechnician {
		return job.TechnicianID == actorID
	}
	return role.Valid()
}

// canInvite reports whether inviter may hand out invitee.
func canInvite(inviter, invitee entities.Role) bool {
	switch inviter {
	case entities.RoleAdmin:
		return invitee.Valid()
	case entities.RoleSemiAdmin:
		return invitee == entities.RoleTechnician || invitee == entities.RoleViewer
	}
	return false
}
