// Package accounts chains user API calls into the account actions an
// administrator performs by username.
package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// Result messages.
const (
	MessageUserAdded        = "User was created, activated, and approved successfully"
	MessageUserNotCreated   = "User was not created successfully."
	MessageUserNotLocated   = "User was created but could not be found."
	MessageUserNotActivated = "User was created but could not be activated."
	MessageUserNotApproved  = "User was created but could not be approved."
)

// UserAPI is the subset of discourse.UsersClient the service needs.
type UserAPI interface {
	LookupIDByUsername(ctx context.Context, username string) (*discourse.Result[int64], error)
	Create(ctx context.Context, request *discourse.CreateUserRequest) (*discourse.Result[*discourse.CreateUserResult], error)
	ActivateByID(ctx context.Context, userID int64) (*discourse.Result[bool], error)
	ApproveByID(ctx context.Context, userID int64) (*discourse.Result[bool], error)
	SuspendByID(ctx context.Context, userID int64, request *discourse.SuspendRequest) (*discourse.Result[*discourse.Suspension], error)
	UnsuspendByID(ctx context.Context, userID int64) (*discourse.Result[*discourse.Suspension], error)
}

// Service performs multi-step account actions.
type Service struct {
	users  UserAPI
	logger discourse.Logger
}

// NewService creates a service over users. A nil logger discards output.
func NewService(users UserAPI, logger discourse.Logger) *Service {
	if logger == nil {
		logger = discourse.NopLogger()
	}

	return &Service{
		users:  users,
		logger: logger,
	}
}

// AddNewUser creates the user, then activates and approves the new account.
// An existing username is unsuspended by Create and left as is; the result
// then carries Create's message.
func (s *Service) AddNewUser(ctx context.Context, request *discourse.CreateUserRequest) (*discourse.Result[string], error) {
	created, err := s.users.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("adding user: %w", err)
	}

	if !created.Success {
		return discourse.Fail[string](append([]string{MessageUserNotCreated}, created.Errors...)...), nil
	}

	if created.Data == nil {
		return discourse.Warn("", created.Errors...), nil
	}

	if created.Data.Existing {
		return discourse.OK(created.Data.Message), nil
	}

	userID, located, err := s.locate(ctx, request.Username, created.Data.UserID)
	if err != nil {
		return nil, err
	}

	if !located.Success {
		return discourse.Fail[string](append([]string{MessageUserNotLocated}, located.Errors...)...), nil
	}

	if !created.Data.UserActive {
		activated, err := s.users.ActivateByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("activating new user: %w", err)
		}

		if !activated.Success {
			return discourse.Fail[string](append([]string{MessageUserNotActivated}, activated.Errors...)...), nil
		}
	}

	approved, err := s.users.ApproveByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("approving new user: %w", err)
	}

	if !approved.Success {
		return discourse.Fail[string](append([]string{MessageUserNotApproved}, approved.Errors...)...), nil
	}

	s.logger.Info("User added", map[string]interface{}{
		"username": request.Username,
		"user_id":  userID,
	})

	return discourse.OK(MessageUserAdded), nil
}

// locate returns the id of a newly created user, looking it up when the
// forum did not report one.
func (s *Service) locate(ctx context.Context, username string, reported int64) (int64, *discourse.Result[int64], error) {
	if reported != 0 {
		return reported, discourse.OK(reported), nil
	}

	found, err := s.users.LookupIDByUsername(ctx, username)
	if err != nil {
		return 0, nil, fmt.Errorf("locating new user: %w", err)
	}

	return found.Data, found, nil
}

// SuspendUser suspends username until the given time. Nothing is changed
// when the username cannot be resolved.
func (s *Service) SuspendUser(ctx context.Context, username string, until time.Time, reason string) (*discourse.Result[*discourse.Suspension], error) {
	found, err := s.users.LookupIDByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("suspending user: %w", err)
	}

	if !found.Success {
		return discourse.Fail[*discourse.Suspension](found.Errors...), nil
	}

	result, err := s.users.SuspendByID(ctx, found.Data, &discourse.SuspendRequest{Until: until, Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("suspending user: %w", err)
	}

	if result.Success {
		s.logger.Info("User suspended", map[string]interface{}{
			"username": username,
			"user_id":  found.Data,
			"until":    until.Format(time.RFC3339),
		})
	}

	return result, nil
}

// UnsuspendUser lifts the suspension of username. Nothing is changed when
// the username cannot be resolved.
func (s *Service) UnsuspendUser(ctx context.Context, username string) (*discourse.Result[*discourse.Suspension], error) {
	found, err := s.users.LookupIDByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("unsuspending user: %w", err)
	}

	if !found.Success {
		return discourse.Fail[*discourse.Suspension](found.Errors...), nil
	}

	result, err := s.users.UnsuspendByID(ctx, found.Data)
	if err != nil {
		return nil, fmt.Errorf("unsuspending user: %w", err)
	}

	if result.Success {
		s.logger.Info("User unsuspended", map[string]interface{}{
			"username": username,
			"user_id":  found.Data,
		})
	}

	return result, nil
}
