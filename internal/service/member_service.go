package service

import (
	"context"
	"log"
	"strings"

	"github.com/teamtask-app/teamtask-backend/internal/email"
	"github.com/teamtask-app/teamtask-backend/internal/notification"
	"github.com/teamtask-app/teamtask-backend/internal/repository"
	"github.com/teamtask-app/teamtask-backend/internal/types"
)

// MemberService owns project-scoped authorization: a project_members row is
// the sole membership predicate, role=admin the sole mutation predicate.
// Every check re-queries the store; the store owns consistency.
type MemberService interface {
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	IsAdmin(ctx context.Context, projectID, userID string) (bool, error)

	List(ctx context.Context, projectID, callerID string) ([]*repository.ProjectMember, error)
	Invite(ctx context.Context, projectID, callerID, inviteEmail string) (*repository.ProjectMember, error)
	Remove(ctx context.Context, projectID, callerID, targetUserID string) error
}

type memberService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	notifSvc    *notification.Service
	emailSvc    *email.Service
}

func NewMemberService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notifSvc *notification.Service,
	emailSvc *email.Service,
) MemberService {
	return &memberService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
	}
}

func (s *memberService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	member, err := s.projectRepo.FindMember(ctx, projectID, userID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (s *memberService) IsAdmin(ctx context.Context, projectID, userID string) (bool, error) {
	member, err := s.projectRepo.FindMember(ctx, projectID, userID)
	if err != nil {
		return false, err
	}
	return member != nil && member.Role == types.RoleAdmin, nil
}

func (s *memberService) List(ctx context.Context, projectID, callerID string) ([]*repository.ProjectMember, error) {
	isMember, err := s.IsMember(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrForbidden
	}
	return s.projectRepo.FindMembers(ctx, projectID)
}

// Invite adds the user with the given email as a regular member. Only admins
// may invite; the target must exist, must not already be a member, and the
// caller's tier caps the project's member count.
func (s *memberService) Invite(ctx context.Context, projectID, callerID, inviteEmail string) (*repository.ProjectMember, error) {
	isAdmin, err := s.IsAdmin(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	inviteEmail = strings.ToLower(strings.TrimSpace(inviteEmail))
	target, err := s.userRepo.FindByEmail(ctx, inviteEmail)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.projectRepo.FindMember(ctx, projectID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	tier := types.TierFree
	if caller != nil {
		tier = caller.Tier
	}

	limit := types.MemberLimitFor(tier)
	if limit != types.MemberLimitUnlimited {
		count, err := s.projectRepo.CountMembers(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if count >= limit {
			return nil, NewValidationError("member limit reached for your plan")
		}
	}

	member := &repository.ProjectMember{
		ProjectID: projectID,
		UserID:    target.ID,
		Role:      types.RoleMember,
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	member.User = target

	// Best-effort side effects; failures are logged, never rolled back.
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil || project == nil {
		log.Printf("[Member] Failed to load project %s for invite notification: %v", projectID, err)
		return member, nil
	}
	if s.notifSvc != nil {
		if err := s.notifSvc.SendProjectInvited(ctx, target.ID, project.Name); err != nil {
			log.Printf("[Member] Failed to send invite notification: %v", err)
		}
	}
	if s.emailSvc != nil && caller != nil {
		invitedBy := caller.Email
		if caller.Name != nil {
			invitedBy = *caller.Name
		}
		if err := s.emailSvc.SendMemberAdded(target.Email, project.Name, invitedBy); err != nil {
			log.Printf("[Member] Failed to send invite email: %v", err)
		}
	}

	return member, nil
}

// Remove deletes a membership. Admins only; the target must not be an admin
// and must not be the caller. Tasks keep their creator/assignee references.
func (s *memberService) Remove(ctx context.Context, projectID, callerID, targetUserID string) error {
	isAdmin, err := s.IsAdmin(ctx, projectID, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrForbidden
	}

	if targetUserID == callerID {
		return ErrForbidden
	}

	target, err := s.projectRepo.FindMember(ctx, projectID, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}
	if target.Role == types.RoleAdmin {
		return ErrForbidden
	}

	return s.projectRepo.RemoveMember(ctx, projectID, targetUserID)
}
