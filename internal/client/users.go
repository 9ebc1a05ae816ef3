package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// Operation names used in DomainError.Op.
const (
	opLookupUser   = "could not look up username"
	opGetUser      = "could not get username"
	opHoneypot     = "could not fetch honeypot"
	opCreateUser   = "could not create username"
	opActivateUser = "could not activate user id"
	opApproveUser  = "could not approve user id"
	opSuspendUser  = "could not suspend user id"
	opUnsuspend    = "could not unsuspend user id"
	opDeleteUser   = "could not delete user id"
)

// UsersClient implements discourse.UsersClient.
type UsersClient struct {
	httpClient       *http.Client
	logger           discourse.Logger
	unsuspendFailure discourse.UnsuspendFailurePolicy
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, logger discourse.Logger, policy discourse.UnsuspendFailurePolicy) *UsersClient {
	if logger == nil {
		logger = discourse.NopLogger()
	}

	return &UsersClient{
		httpClient:       httpClient,
		logger:           logger,
		unsuspendFailure: policy,
	}
}

// LookupIDByUsername implements discourse.UsersClient.LookupIDByUsername.
func (c *UsersClient) LookupIDByUsername(ctx context.Context, username string) (*discourse.Result[int64], error) {
	err := validateUsername(username)
	if err != nil {
		return discourse.Fail[int64](discourse.ValidationMessages(err)...), nil
	}

	user, perr, err := c.fetchUser(ctx, opLookupUser, username)
	if err != nil {
		return nil, err
	}

	if perr != nil {
		return discourse.Fail[int64](perr.Errors...), nil
	}

	return discourse.OK(user.ID), nil
}

// GetByUsername implements discourse.UsersClient.GetByUsername.
func (c *UsersClient) GetByUsername(ctx context.Context, username string) (*discourse.Result[*discourse.User], error) {
	err := validateUsername(username)
	if err != nil {
		return discourse.Fail[*discourse.User](discourse.ValidationMessages(err)...), nil
	}

	user, perr, err := c.fetchUser(ctx, opGetUser, username)
	if err != nil {
		return nil, err
	}

	if perr != nil {
		return discourse.Fail[*discourse.User](perr.Errors...), nil
	}

	return discourse.OK(user), nil
}

// fetchUser loads a user by username. A refusal from the forum, including
// not found, is returned as a PlatformError rather than an error.
func (c *UsersClient) fetchUser(ctx context.Context, op, username string) (*discourse.User, *discourse.PlatformError, error) {
	resp, err := c.httpClient.Get(ctx, userPath(username), nil)
	if err != nil {
		return nil, nil, discourse.NewDomainError(op, username, err)
	}

	if !resp.IsSuccess() {
		return nil, platformError(resp), nil
	}

	var body struct {
		User *discourse.User `json:"user"`
	}

	err = decode(resp, &body, op, username)
	if err != nil {
		return nil, nil, err
	}

	if body.User == nil {
		return nil, &discourse.PlatformError{
			StatusCode: resp.StatusCode,
			Errors:     []string{fmt.Sprintf("%s: %s", discourse.ErrUserNotFound, username)},
			ErrorType:  "not_found",
		}, nil
	}

	return body.User, nil, nil
}

// Honeypot implements discourse.UsersClient.Honeypot.
func (c *UsersClient) Honeypot(ctx context.Context) (*discourse.Result[*discourse.Honeypot], error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathHoneypot, nil)
	if err != nil {
		return nil, discourse.NewDomainError(opHoneypot, constants.APIPathHoneypot, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.Honeypot](resp), nil
	}

	var honeypot discourse.Honeypot

	err = decode(resp, &honeypot, opHoneypot, constants.APIPathHoneypot)
	if err != nil {
		return nil, err
	}

	if honeypot.Challenge == "" {
		return nil, unexpected(opHoneypot, constants.APIPathHoneypot, fmt.Errorf("%w: empty challenge", discourse.ErrHoneypotUnavailable))
	}

	return discourse.OK(&honeypot), nil
}

// Create implements discourse.UsersClient.Create.
//
// An existing username is unsuspended instead of registered again. Otherwise
// the honeypot is fetched and echoed back with the registration form.
func (c *UsersClient) Create(ctx context.Context, request *discourse.CreateUserRequest) (*discourse.Result[*discourse.CreateUserResult], error) {
	if request == nil {
		return discourse.Fail[*discourse.CreateUserResult](discourse.ErrInvalidRequest.Error()), nil
	}

	err := request.Validate()
	if err != nil {
		return discourse.Fail[*discourse.CreateUserResult](discourse.ValidationMessages(err)...), nil
	}

	user, perr, err := c.fetchUser(ctx, opCreateUser, request.Username)
	if err != nil {
		return nil, err
	}

	if user != nil {
		return c.unsuspendExisting(ctx, user)
	}

	if !perr.IsNotFound() {
		return discourse.Fail[*discourse.CreateUserResult](perr.Errors...), nil
	}

	honeypot, err := c.fetchHoneypot(ctx, request.Username)
	if err != nil {
		return nil, err
	}

	return c.register(ctx, request, honeypot)
}

func (c *UsersClient) fetchHoneypot(ctx context.Context, username string) (*discourse.Honeypot, error) {
	result, err := c.Honeypot(ctx)
	if err != nil {
		return nil, discourse.NewDomainError(opCreateUser, username, fmt.Errorf("%w: %w", discourse.ErrHoneypotUnavailable, err))
	}

	if !result.Success {
		return nil, discourse.NewDomainError(opCreateUser, username,
			fmt.Errorf("%w: %s", discourse.ErrHoneypotUnavailable, strings.Join(result.Errors, "; ")))
	}

	return result.Data, nil
}

func (c *UsersClient) register(
	ctx context.Context,
	request *discourse.CreateUserRequest,
	honeypot *discourse.Honeypot,
) (*discourse.Result[*discourse.CreateUserResult], error) {
	form := url.Values{}
	form.Set("name", request.Name)
	form.Set("username", request.Username)
	form.Set("email", request.Email)
	form.Set("password", request.Password)
	form.Set("challenge", honeypot.ReversedChallenge())
	form.Set("password_confirmation", honeypot.Value)
	form.Set("active", constants.BooleanTrue)
	form.Set("approved", constants.BooleanTrue)

	resp, err := c.httpClient.Post(ctx, constants.APIPathUsers, form)
	if err != nil {
		return nil, discourse.NewDomainError(opCreateUser, request.Username, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.CreateUserResult](resp), nil
	}

	var body struct {
		Success bool           `json:"success"`
		Active  bool           `json:"active"`
		UserID  int64          `json:"user_id"`
		Message string         `json:"message"`
		Errors  platformErrors `json:"errors"`
	}

	err = decode(resp, &body, opCreateUser, request.Username)
	if err != nil {
		return nil, err
	}

	if !body.Success {
		messages := make([]string, 0, len(body.Errors)+1)
		if body.Message != "" {
			messages = append(messages, body.Message)
		}

		messages = append(messages, body.Errors...)
		if len(messages) == 0 {
			messages = append(messages, "user was not created")
		}

		return discourse.Fail[*discourse.CreateUserResult](messages...), nil
	}

	c.logger.Info("User created", map[string]interface{}{
		"username": request.Username,
		"user_id":  body.UserID,
		"active":   body.Active,
	})

	return discourse.OK(&discourse.CreateUserResult{
		UserActive: body.Active,
		UserID:     body.UserID,
		Message:    body.Message,
	}), nil
}

// unsuspendExisting lifts the suspension of an account found during Create.
// A refused unsuspend is reported according to the configured policy.
func (c *UsersClient) unsuspendExisting(ctx context.Context, user *discourse.User) (*discourse.Result[*discourse.CreateUserResult], error) {
	result, err := c.UnsuspendByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if result.Success {
		c.logger.Info("Existing user unsuspended", map[string]interface{}{
			"username": user.Username,
			"user_id":  user.ID,
		})

		return discourse.OK(&discourse.CreateUserResult{
			UserActive: true,
			UserID:     user.ID,
			Message:    discourse.MessageUnsuspendedViaCreation,
			Existing:   true,
		}), nil
	}

	messages := make([]string, 0, len(result.Errors))
	for _, message := range result.Errors {
		messages = append(messages, fmt.Sprintf("could not unsuspend existing user %s: %s", user.Username, message))
	}

	c.logger.Warn("Unsuspend of existing user failed", map[string]interface{}{
		"username": user.Username,
		"user_id":  user.ID,
		"policy":   c.unsuspendFailure.String(),
		"errors":   result.Errors,
	})

	if c.unsuspendFailure == discourse.UnsuspendFailureFail {
		return discourse.Fail[*discourse.CreateUserResult](messages...), nil
	}

	return discourse.Warn[*discourse.CreateUserResult](nil, messages...), nil
}

// ActivateByID implements discourse.UsersClient.ActivateByID.
func (c *UsersClient) ActivateByID(ctx context.Context, userID int64) (*discourse.Result[bool], error) {
	resp, err := c.httpClient.Put(ctx, adminUserPath(userID, "activate"), url.Values{})
	if err != nil {
		return nil, discourse.NewDomainError(opActivateUser, formatID(userID), err)
	}

	return acknowledge(resp), nil
}

// ApproveByID implements discourse.UsersClient.ApproveByID.
func (c *UsersClient) ApproveByID(ctx context.Context, userID int64) (*discourse.Result[bool], error) {
	resp, err := c.httpClient.Put(ctx, adminUserPath(userID, "approve"), url.Values{})
	if err != nil {
		return nil, discourse.NewDomainError(opApproveUser, formatID(userID), err)
	}

	return acknowledge(resp), nil
}

// SuspendByID implements discourse.UsersClient.SuspendByID.
func (c *UsersClient) SuspendByID(ctx context.Context, userID int64, request *discourse.SuspendRequest) (*discourse.Result[*discourse.Suspension], error) {
	if request == nil {
		return discourse.Fail[*discourse.Suspension](discourse.ErrInvalidRequest.Error()), nil
	}

	err := request.Validate()
	if err != nil {
		return discourse.Fail[*discourse.Suspension](discourse.ValidationMessages(err)...), nil
	}

	form := url.Values{}
	form.Set("suspend_until", request.Until.UTC().Format(constants.SuspendUntilLayout))
	form.Set("reason", request.Reason)

	subject := formatID(userID)

	resp, err := c.httpClient.Put(ctx, adminUserPath(userID, "suspend"), form)
	if err != nil {
		return nil, discourse.NewDomainError(opSuspendUser, subject, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.Suspension](resp), nil
	}

	var body struct {
		Suspension *discourse.Suspension `json:"suspension"`
	}

	err = decode(resp, &body, opSuspendUser, subject)
	if err != nil {
		return nil, err
	}

	if body.Suspension == nil {
		until := request.Until.UTC()
		body.Suspension = &discourse.Suspension{SuspendedTill: &until, SuspendReason: request.Reason}
	}

	return discourse.OK(body.Suspension), nil
}

// UnsuspendByID implements discourse.UsersClient.UnsuspendByID. Unsuspending
// an account that is not suspended succeeds.
func (c *UsersClient) UnsuspendByID(ctx context.Context, userID int64) (*discourse.Result[*discourse.Suspension], error) {
	subject := formatID(userID)

	resp, err := c.httpClient.Put(ctx, adminUserPath(userID, "unsuspend"), url.Values{})
	if err != nil {
		return nil, discourse.NewDomainError(opUnsuspend, subject, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.Suspension](resp), nil
	}

	var body struct {
		Suspension *discourse.Suspension `json:"suspension"`
	}

	err = decode(resp, &body, opUnsuspend, subject)
	if err != nil {
		return nil, err
	}

	if body.Suspension == nil {
		body.Suspension = &discourse.Suspension{}
	}

	return discourse.OK(body.Suspension), nil
}

// DeleteByID implements discourse.UsersClient.DeleteByID.
func (c *UsersClient) DeleteByID(ctx context.Context, userID int64) (*discourse.Result[bool], error) {
	subject := formatID(userID)

	resp, err := c.httpClient.Delete(ctx, fmt.Sprintf("%s/%d.json", constants.APIPathAdminUsers, userID))
	if err != nil {
		return nil, discourse.NewDomainError(opDeleteUser, subject, err)
	}

	if !resp.IsSuccess() {
		return failure[bool](resp), nil
	}

	var body struct {
		Deleted *bool `json:"deleted"`
	}

	err = decode(resp, &body, opDeleteUser, subject)
	if err != nil {
		return nil, err
	}

	if body.Deleted != nil && !*body.Deleted {
		return discourse.Fail[bool]("user " + subject + " was not deleted"), nil
	}

	return discourse.OK(true), nil
}

func validateUsername(username string) error {
	err := validation.Validate(username, validation.Required)
	if err != nil {
		return validation.Errors{"username": err}
	}

	return nil
}

func userPath(username string) string {
	return constants.APIPathUsers + "/" + url.PathEscape(username) + ".json"
}

func adminUserPath(userID int64, action string) string {
	return fmt.Sprintf("%s/%d/%s", constants.APIPathAdminUsers, userID, action)
}

func formatID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
