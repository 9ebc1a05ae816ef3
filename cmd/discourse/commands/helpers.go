package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// ValidateOutputFormat rejects unknown --output values.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (use table, json or yaml)", constants.ErrInvalidOutput, format)
	}
}

// outputResult prints result in the selected format. Tables show only the
// data of a successful result; json and yaml show the whole envelope. A
// failed result is returned as an error so the process exits non-zero.
func outputResult[T any](result *discourse.Result[T], table func(T) error) error {
	handled, err := writeStructured(result)
	if err != nil {
		return err
	}

	if !handled && result.Success {
		for _, warning := range result.Errors {
			fmt.Fprintln(os.Stderr, "Warning:", warning)
		}

		err = table(result.Data)
		if err != nil {
			return err
		}
	}

	return rejection(result.Success, result.Errors)
}

// writeStructured encodes v to stdout when the output format is json or
// yaml. It reports false for table output.
func writeStructured(v any) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}

		return true, nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

func rejection(success bool, errs []string) error {
	if success {
		return nil
	}

	return fmt.Errorf("%w: %s", constants.ErrOperationRejected, strings.Join(errs, "; "))
}

// renderProperties prints a two-column property table.
func renderProperties(rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(constants.DateTimeLayout)
}

func formatBool(b bool) string {
	if b {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length-3]) + "..."
}

// parseUntil turns a free-form --until value into an instant after now. An
// empty value selects the default suspension length.
func parseUntil(value string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return now.Add(constants.DefaultSuspendDuration), nil
	}

	until, err := dateparse.ParseIn(value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", constants.ErrInvalidUntil, value, err)
	}

	if !until.After(now) {
		return time.Time{}, fmt.Errorf("%w %q: must be in the future", constants.ErrInvalidUntil, value)
	}

	return until, nil
}

func parseTopicID(value string) (int64, error) {
	topicID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || topicID <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidTopicID, value)
	}

	return topicID, nil
}

// resolveUserID accepts a numeric id or a username.
func resolveUserID(ctx context.Context, users discourse.UsersClient, ref string) (int64, error) {
	userID, err := strconv.ParseInt(ref, 10, 64)
	if err == nil {
		return userID, nil
	}

	if strings.TrimSpace(ref) == "" {
		return 0, fmt.Errorf("%w: empty", constants.ErrInvalidUserID)
	}

	found, err := users.LookupIDByUsername(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("resolving user %s: %w", ref, err)
	}

	if !found.Success {
		return 0, rejection(false, found.Errors)
	}

	return found.Data, nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return constants.NotAvailable
	}

	return constants.MaskedSecret
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return context.WithTimeout(parent, constants.DefaultCLITimeout)
}
