package members

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	clockport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

// DefaultGroupRole is assigned when a profile is created without a role.
const DefaultGroupRole = "singer"

type Service struct {
	repo memberrepo.Repository
	clk  clockport.Clock

	newMemberID func() domain.MemberID
}

func NewService(repo memberrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newMemberID: func() domain.MemberID {
			return domain.MemberID(uuid.NewString())
		},
	}
}

// ListDirectory returns the member directory: id/name pairs only, never emails.
func (s *Service) ListDirectory(ctx context.Context, includeInactive bool) ([]domain.MemberSummary, error) {
	ms, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MemberSummary, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.MemberSummary{ID: m.ID, FullName: m.FullName})
	}
	return out, nil
}

// GetProfile returns the profile view exposed for a member id.
func (s *Service) GetProfile(ctx context.Context, id domain.MemberID) (domain.UserInfo, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.UserInfo{}, &Error{
				Status:  404,
				Code:    "MEMBER_NOT_FOUND",
				Message: "No member exists with the requested id.",
			}
		}
		return domain.UserInfo{}, err
	}
	return toUserInfo(m), nil
}

func (s *Service) GetMyProfile(ctx context.Context, subject domain.SubjectID) (domain.Member, error) {
	m, err := s.repo.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{
				Status:  404,
				Code:    "MEMBER_NOT_PROVISIONED",
				Message: "No member profile exists for the authenticated subject.",
			}
		}
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func (s *Service) CreateMyProfile(ctx context.Context, subject domain.SubjectID, in CreateMyProfileInput) (domain.Member, error) {
	// Ensure no existing binding.
	if _, err := s.repo.GetBySubject(ctx, subject); err == nil {
		return domain.Member{}, &Error{
			Status:  409,
			Code:    "MEMBER_ALREADY_EXISTS",
			Message: "A member profile already exists for the authenticated subject.",
		}
	} else if !errors.Is(err, memberrepo.ErrNotFound) {
		return domain.Member{}, err
	}

	fullName := domain.NormalizeHumanName(in.FullName)
	if fullName == "" {
		return domain.Member{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid fullName",
			Details: map[string]any{"fullName": "must be non-empty"},
		}
	}
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return domain.Member{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid email",
			Details: map[string]any{"email": err.Error()},
		}
	}
	if err := s.ensureEmailUnique(ctx, email, ""); err != nil {
		return domain.Member{}, err
	}
	role := strings.TrimSpace(in.GroupRole)
	if role == "" {
		role = DefaultGroupRole
	}

	now := s.clk.Now()
	rec := memberrepo.Member{
		ID:        s.newMemberID(),
		Subject:   subject,
		FullName:  fullName,
		Email:     email,
		AvatarURL: cloneStringPtr(in.AvatarURL),
		GroupRole: role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, memberrepo.ErrSubjectAlreadyBound) {
			return domain.Member{}, &Error{
				Status:  409,
				Code:    "MEMBER_ALREADY_EXISTS",
				Message: "A member profile already exists for the authenticated subject.",
			}
		}
		return domain.Member{}, err
	}
	return toDomain(rec), nil
}

func (s *Service) UpdateMyProfile(ctx context.Context, subject domain.SubjectID, in UpdateMyProfileInput) (domain.Member, error) {
	m, err := s.repo.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{
				Status:  404,
				Code:    "MEMBER_NOT_PROVISIONED",
				Message: "No member profile exists for the authenticated subject.",
			}
		}
		return domain.Member{}, err
	}

	if in.FullName.IsSpecified() {
		if in.FullName.IsNull() {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid fullName",
				Details: map[string]any{"fullName": "cannot be null"},
			}
		}
		fullName := domain.NormalizeHumanName(in.FullName.Value())
		if fullName == "" {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid fullName",
				Details: map[string]any{"fullName": "must be non-empty"},
			}
		}
		m.FullName = fullName
	}

	if in.Email.IsSpecified() {
		if in.Email.IsNull() {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid email",
				Details: map[string]any{"email": "cannot be null"},
			}
		}
		email := strings.TrimSpace(in.Email.Value())
		if err := validateEmail(email); err != nil {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid email",
				Details: map[string]any{"email": err.Error()},
			}
		}
		if err := s.ensureEmailUnique(ctx, email, string(m.ID)); err != nil {
			return domain.Member{}, err
		}
		m.Email = email
	}

	if in.AvatarURL.IsSpecified() {
		if in.AvatarURL.IsNull() {
			m.AvatarURL = nil
		} else {
			v := strings.TrimSpace(in.AvatarURL.Value())
			if v == "" {
				m.AvatarURL = nil
			} else {
				m.AvatarURL = &v
			}
		}
	}

	if in.GroupRole.IsSpecified() {
		if in.GroupRole.IsNull() {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid groupRole",
				Details: map[string]any{"groupRole": "cannot be null"},
			}
		}
		role := strings.TrimSpace(in.GroupRole.Value())
		if role == "" {
			return domain.Member{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid groupRole",
				Details: map[string]any{"groupRole": "must be non-empty"},
			}
		}
		m.GroupRole = role
	}

	m.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func (s *Service) ensureEmailUnique(ctx context.Context, email string, excludeMemberID string) error {
	ms, err := s.repo.List(ctx, true)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if excludeMemberID != "" && string(m.ID) == excludeMemberID {
			continue
		}
		if strings.EqualFold(m.Email, email) {
			return &Error{
				Status:  409,
				Code:    "EMAIL_ALREADY_IN_USE",
				Message: "email address is already in use",
			}
		}
	}
	return nil
}

func toDomain(m memberrepo.Member) domain.Member {
	return domain.Member{
		ID:        m.ID,
		Subject:   m.Subject,
		FullName:  m.FullName,
		Email:     m.Email,
		AvatarURL: cloneStringPtr(m.AvatarURL),
		GroupRole: m.GroupRole,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toUserInfo(m memberrepo.Member) domain.UserInfo {
	return domain.UserInfo{
		ID:        m.ID,
		FullName:  m.FullName,
		AvatarURL: cloneStringPtr(m.AvatarURL),
		GroupRole: m.GroupRole,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
