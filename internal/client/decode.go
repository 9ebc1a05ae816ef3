package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"sort"

	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// platformErrors holds the errors field of a forum response. The forum sends
// it as a list of messages, a single message, or an object mapping field
// names to messages; the object form is flattened to "field: message".
type platformErrors []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *platformErrors) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = nil

		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []string

		err := json.Unmarshal(trimmed, &list)
		if err != nil {
			return fmt.Errorf("parsing error list: %w", err)
		}

		*p = list
	case '"':
		var message string

		err := json.Unmarshal(trimmed, &message)
		if err != nil {
			return fmt.Errorf("parsing error message: %w", err)
		}

		*p = []string{message}
	case '{':
		flattened, err := flattenFieldErrors(trimmed)
		if err != nil {
			return err
		}

		*p = flattened
	default:
		return fmt.Errorf("%w: errors field is %s", discourse.ErrUnexpectedResponse, trimmed)
	}

	return nil
}

func flattenFieldErrors(data []byte) ([]string, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, fmt.Errorf("parsing field errors: %w", err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)

	var messages []string

	for _, name := range names {
		var list platformErrors

		err := json.Unmarshal(fields[name], &list)
		if err != nil {
			return nil, fmt.Errorf("parsing errors for %s: %w", name, err)
		}

		for _, message := range list {
			messages = append(messages, name+": "+message)
		}
	}

	return messages, nil
}

// errorBody is the shape of a refusal from the forum.
type errorBody struct {
	Errors    platformErrors `json:"errors"`
	Error     string         `json:"error"`
	ErrorType string         `json:"error_type"`
	Message   string         `json:"message"`
	Failed    string         `json:"failed"`
}

func (b *errorBody) messages() []string {
	switch {
	case len(b.Errors) > 0:
		return b.Errors
	case b.Error != "":
		return []string{b.Error}
	case b.Message != "":
		return []string{b.Message}
	default:
		return nil
	}
}

// platformError decodes a non-2xx response. Bodies that are not JSON, such
// as proxy error pages, fall back to a status message.
func platformError(resp *http.Response) *discourse.PlatformError {
	perr := &discourse.PlatformError{StatusCode: resp.StatusCode}

	var body errorBody
	if json.Unmarshal(resp.Body, &body) == nil {
		perr.Errors = body.messages()
		perr.ErrorType = body.ErrorType
	}

	if len(perr.Errors) == 0 {
		perr.Errors = []string{statusMessage(resp.StatusCode)}
	}

	return perr
}

func statusMessage(code int) string {
	text := nethttp.StatusText(code)
	if text == "" {
		return fmt.Sprintf("request failed with status %d", code)
	}

	return fmt.Sprintf("request failed with status %d %s", code, text)
}

// failure converts a non-2xx response into a failed envelope.
func failure[T any](resp *http.Response) *discourse.Result[T] {
	return discourse.Fail[T](platformError(resp).Errors...)
}

// decode unmarshals a 2xx body into v. An empty body leaves v untouched;
// callers check for the fields they need.
func decode(resp *http.Response, v interface{}, op, subject string) error {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	err := json.Unmarshal(resp.Body, v)
	if err != nil {
		return unexpected(op, subject, err)
	}

	return nil
}

// unexpected reports a 2xx response that does not have the expected shape.
func unexpected(op, subject string, cause error) error {
	if cause == nil {
		return discourse.NewDomainError(op, subject, discourse.ErrUnexpectedResponse)
	}

	return discourse.NewDomainError(op, subject, fmt.Errorf("%w: %w", discourse.ErrUnexpectedResponse, cause))
}

// acknowledge interprets the response to an admin action whose success
// payload carries nothing the caller needs.
func acknowledge(resp *http.Response) *discourse.Result[bool] {
	if !resp.IsSuccess() {
		return failure[bool](resp)
	}

	var body errorBody
	if json.Unmarshal(resp.Body, &body) == nil && body.Failed != "" {
		messages := body.messages()
		if len(messages) == 0 {
			messages = []string{"the forum reported the action as " + body.Failed}
		}

		return discourse.Fail[bool](messages...)
	}

	return discourse.OK(true)
}
