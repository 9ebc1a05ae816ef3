package accounts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/accounts"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

var errTestTransport = errors.New("connection refused")

type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) LookupIDByUsername(ctx context.Context, username string) (*discourse.Result[int64], error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[int64]), args.Error(1)
}

func (m *MockUserAPI) Create(ctx context.Context, request *discourse.CreateUserRequest) (*discourse.Result[*discourse.CreateUserResult], error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[*discourse.CreateUserResult]), args.Error(1)
}

func (m *MockUserAPI) ActivateByID(ctx context.Context, userID int64) (*discourse.Result[bool], error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[bool]), args.Error(1)
}

func (m *MockUserAPI) ApproveByID(ctx context.Context, userID int64) (*discourse.Result[bool], error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[bool]), args.Error(1)
}

func (m *MockUserAPI) SuspendByID(ctx context.Context, userID int64, request *discourse.SuspendRequest) (*discourse.Result[*discourse.Suspension], error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[*discourse.Suspension]), args.Error(1)
}

func (m *MockUserAPI) UnsuspendByID(ctx context.Context, userID int64) (*discourse.Result[*discourse.Suspension], error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*discourse.Result[*discourse.Suspension]), args.Error(1)
}

func newRequest() *discourse.CreateUserRequest {
	return &discourse.CreateUserRequest{
		Name:     "John Doe",
		Username: "johndoe",
		Email:    "j@example.com",
		Password: "pw",
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestService_AddNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates activates and approves", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		request := newRequest()
		users.On("Create", mock.Anything, request).
			Return(discourse.OK(&discourse.CreateUserResult{UserActive: false, UserID: 42}), nil)
		users.On("ActivateByID", mock.Anything, int64(42)).Return(discourse.OK(true), nil)
		users.On("ApproveByID", mock.Anything, int64(42)).Return(discourse.OK(true), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), request)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, accounts.MessageUserAdded, result.Data)
		users.AssertExpectations(t)
	})

	t.Run("skips activation of an active user", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.OK(&discourse.CreateUserResult{UserActive: true, UserID: 42}), nil)
		users.On("ApproveByID", mock.Anything, int64(42)).Return(discourse.OK(true), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.True(t, result.Success)
		users.AssertNotCalled(t, "ActivateByID", mock.Anything, mock.Anything)
	})

	t.Run("locates the user when no id is reported", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.OK(&discourse.CreateUserResult{UserActive: true}), nil)
		users.On("LookupIDByUsername", mock.Anything, "johndoe").Return(discourse.OK(int64(43)), nil)
		users.On("ApproveByID", mock.Anything, int64(43)).Return(discourse.OK(true), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.True(t, result.Success)
		users.AssertExpectations(t)
	})

	t.Run("creation failure", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.Fail[*discourse.CreateUserResult]("Username must be unique"), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, []string{accounts.MessageUserNotCreated, "Username must be unique"}, result.Errors)
		users.AssertNotCalled(t, "ApproveByID", mock.Anything, mock.Anything)
	})

	t.Run("existing user is not re-approved", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).Return(discourse.OK(&discourse.CreateUserResult{
			UserActive: true,
			UserID:     7,
			Message:    discourse.MessageUnsuspendedViaCreation,
			Existing:   true,
		}), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, discourse.MessageUnsuspendedViaCreation, result.Data)
		users.AssertNotCalled(t, "ApproveByID", mock.Anything, mock.Anything)
	})

	t.Run("unsuspend warning is passed through", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.Warn[*discourse.CreateUserResult](nil, "could not unsuspend existing user johndoe: denied"), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.HasWarnings())
		assert.Empty(t, result.Data)
	})

	t.Run("approval refused", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.OK(&discourse.CreateUserResult{UserActive: true, UserID: 42}), nil)
		users.On("ApproveByID", mock.Anything, int64(42)).Return(discourse.Fail[bool]("not permitted"), nil)

		result, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, []string{accounts.MessageUserNotApproved, "not permitted"}, result.Errors)
	})

	t.Run("activation transport failure", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("Create", mock.Anything, mock.Anything).
			Return(discourse.OK(&discourse.CreateUserResult{UserID: 42}), nil)
		users.On("ActivateByID", mock.Anything, int64(42)).
			Return(nil, discourse.NewDomainError("could not activate user id", "42", errTestTransport))

		_, err := accounts.NewService(users, nil).AddNewUser(context.Background(), newRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, errTestTransport)
		assert.Contains(t, err.Error(), "42")
	})
}

func TestService_SuspendUser(t *testing.T) {
	t.Parallel()

	until := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("looks up then suspends", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("LookupIDByUsername", mock.Anything, "johndoe").Return(discourse.OK(int64(42)), nil)
		users.On("SuspendByID", mock.Anything, int64(42), &discourse.SuspendRequest{Until: until, Reason: "spam"}).
			Return(discourse.OK(&discourse.Suspension{SuspendedTill: &until, SuspendReason: "spam"}), nil)

		result, err := accounts.NewService(users, nil).SuspendUser(context.Background(), "johndoe", until, "spam")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "spam", result.Data.SuspendReason)
		users.AssertExpectations(t)
	})

	t.Run("unknown user is not suspended", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("LookupIDByUsername", mock.Anything, "ghost").
			Return(discourse.Fail[int64]("The requested URL or resource could not be found."), nil)

		result, err := accounts.NewService(users, nil).SuspendUser(context.Background(), "ghost", until, "spam")
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Errors)
		users.AssertNotCalled(t, "SuspendByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup transport failure", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("LookupIDByUsername", mock.Anything, "johndoe").
			Return(nil, discourse.NewDomainError("could not look up username", "johndoe", errTestTransport))

		_, err := accounts.NewService(users, nil).SuspendUser(context.Background(), "johndoe", until, "spam")
		require.Error(t, err)
		assert.True(t, discourse.IsDomainError(err))
	})
}

func TestService_UnsuspendUser(t *testing.T) {
	t.Parallel()

	t.Run("looks up then unsuspends", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("LookupIDByUsername", mock.Anything, "johndoe").Return(discourse.OK(int64(42)), nil)
		users.On("UnsuspendByID", mock.Anything, int64(42)).Return(discourse.OK(&discourse.Suspension{}), nil)

		result, err := accounts.NewService(users, nil).UnsuspendUser(context.Background(), "johndoe")
		require.NoError(t, err)
		assert.True(t, result.Success)
		users.AssertExpectations(t)
	})

	t.Run("unknown user is not unsuspended", func(t *testing.T) {
		t.Parallel()

		users := &MockUserAPI{}
		users.On("LookupIDByUsername", mock.Anything, "ghost").Return(discourse.Fail[int64]("not found"), nil)

		result, err := accounts.NewService(users, nil).UnsuspendUser(context.Background(), "ghost")
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, []string{"not found"}, result.Errors)
		users.AssertNotCalled(t, "UnsuspendByID", mock.Anything, mock.Anything)
	})
}
