package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage users",
		Long:    "Look up, create, activate, approve, suspend and delete forum users",
	}

	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersLookupCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersAddCommand())
	cmd.AddCommand(newUsersActivateCommand())
	cmd.AddCommand(newUsersApproveCommand())
	cmd.AddCommand(newUsersSuspendCommand())
	cmd.AddCommand(newUsersUnsuspendCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Users().GetByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputResult(result, renderUser)
		},
	}
}

func renderUser(user *discourse.User) error {
	if user == nil {
		return nil
	}

	suspended := constants.BooleanFalse
	if user.IsSuspended(time.Now()) {
		suspended = "until " + formatTime(user.SuspendedTill)
	}

	return renderProperties([][]string{
		{"ID", strconv.FormatInt(user.ID, 10)},
		{"Username", user.Username},
		{"Name", user.Name},
		{"Active", formatBool(user.Active)},
		{"Approved", formatBool(user.Approved)},
		{"Admin", formatBool(user.Admin)},
		{"Moderator", formatBool(user.Moderator)},
		{"Trust Level", strconv.Itoa(user.TrustLevel)},
		{"Suspended", suspended},
		{"Created", formatTime(user.CreatedAt)},
	})
}

func newUsersLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup USERNAME",
		Short: "Print the numeric id of a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Users().LookupIDByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to look up user: %w", err)
			}

			return outputResult(result, func(userID int64) error {
				fmt.Println(userID)

				return nil
			})
		},
	}
}

// UserCreateOptions holds the options for creating a user.
type UserCreateOptions struct {
	Name     string
	Email    string
	Password string
}

func addUserCreateFlags(cmd *cobra.Command, opts *UserCreateOptions) {
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
}

func buildCreateUserRequest(username string, opts UserCreateOptions) (*discourse.CreateUserRequest, error) {
	password := opts.Password
	if password == "" && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(os.Stderr, "Password: ")

		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Fprintln(os.Stderr)

		password = string(bytePassword)
	}

	name := opts.Name
	if name == "" {
		name = username
	}

	return &discourse.CreateUserRequest{
		Name:     name,
		Username: username,
		Email:    strings.TrimSpace(opts.Email),
		Password: password,
	}, nil
}

func newUsersCreateCommand() *cobra.Command {
	var opts UserCreateOptions

	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Register a user",
		Long:  "Register a user, or unsuspend the account if the username already exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildCreateUserRequest(args[0], opts)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := client.Users().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return outputResult(result, func(created *discourse.CreateUserResult) error {
				if created == nil {
					return nil
				}

				return renderProperties([][]string{
					{"User ID", strconv.FormatInt(created.UserID, 10)},
					{"Active", formatBool(created.UserActive)},
					{"Message", created.Message},
				})
			})
		},
	}

	addUserCreateFlags(cmd, &opts)

	return cmd
}

func newUsersAddCommand() *cobra.Command {
	var opts UserCreateOptions

	cmd := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create, activate and approve a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildCreateUserRequest(args[0], opts)
			if err != nil {
				return err
			}

			service, _, err := createAccountsService()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := service.AddNewUser(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to add user: %w", err)
			}

			return outputResult(result, printMessage)
		},
	}

	addUserCreateFlags(cmd, &opts)

	return cmd
}

func printMessage(message string) error {
	if message != "" {
		fmt.Println(message)
	}

	return nil
}

// newUserActionCommand builds a command that applies action to a user
// given by id or username.
func newUserActionCommand(
	use, short, done string,
	action func(discourse.UsersClient) func(ctx context.Context, userID int64) (*discourse.Result[bool], error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " USER",
		Short: short,
		Long:  short + ". USER is a numeric id or a username.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			userID, err := resolveUserID(ctx, client.Users(), args[0])
			if err != nil {
				return err
			}

			result, err := action(client.Users())(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to %s user: %w", use, err)
			}

			return outputResult(result, func(bool) error {
				fmt.Printf("User %d %s\n", userID, done)

				return nil
			})
		},
	}
}

func newUsersActivateCommand() *cobra.Command {
	return newUserActionCommand("activate", "Activate a user", "activated",
		func(users discourse.UsersClient) func(context.Context, int64) (*discourse.Result[bool], error) {
			return users.ActivateByID
		})
}

func newUsersApproveCommand() *cobra.Command {
	return newUserActionCommand("approve", "Approve a user", "approved",
		func(users discourse.UsersClient) func(context.Context, int64) (*discourse.Result[bool], error) {
			return users.ApproveByID
		})
}

func newUsersDeleteCommand() *cobra.Command {
	return newUserActionCommand("delete", "Delete a user", "deleted",
		func(users discourse.UsersClient) func(context.Context, int64) (*discourse.Result[bool], error) {
			return users.DeleteByID
		})
}

// UserSuspendOptions holds the options for suspending a user.
type UserSuspendOptions struct {
	Until  string
	Reason string
}

func newUsersSuspendCommand() *cobra.Command {
	var opts UserSuspendOptions

	cmd := &cobra.Command{
		Use:   "suspend USERNAME",
		Short: "Suspend a user",
		Long: `Suspend a user until the given time. --until accepts most date formats,
for example "2030-01-01", "2030-01-01 15:04" or "Jan 2 2030". Without --until
the suspension is effectively permanent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			until, err := parseUntil(opts.Until, time.Now())
			if err != nil {
				return err
			}

			service, _, err := createAccountsService()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := service.SuspendUser(ctx, args[0], until, opts.Reason)
			if err != nil {
				return fmt.Errorf("failed to suspend user: %w", err)
			}

			return outputResult(result, renderSuspension)
		},
	}

	cmd.Flags().StringVar(&opts.Until, "until", "", "end of the suspension")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "reason shown to the user")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newUsersUnsuspendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unsuspend USERNAME",
		Short: "Lift a user's suspension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := createAccountsService()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			result, err := service.UnsuspendUser(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to unsuspend user: %w", err)
			}

			return outputResult(result, renderSuspension)
		},
	}
}

func renderSuspension(suspension *discourse.Suspension) error {
	if suspension == nil {
		return nil
	}

	reason := suspension.SuspendReason
	if reason == "" {
		reason = constants.NotAvailable
	}

	return renderProperties([][]string{
		{"Suspended Till", formatTime(suspension.SuspendedTill)},
		{"Suspended At", formatTime(suspension.SuspendedAt)},
		{"Reason", reason},
	})
}
