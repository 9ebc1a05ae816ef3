package client

import (
	"context"
	"net/url"
	"regexp"

	"github.com/iancoleman/strcase"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

const opChangeSetting = "could not change site setting"

var (
	snakeSettingName = regexp.MustCompile(`^[a-z0-9_]+$`)
	splitDigits      = regexp.MustCompile(`([a-z])_([0-9])`)
)

// SiteSettingsClient implements discourse.SiteSettingsClient.
type SiteSettingsClient struct {
	httpClient *http.Client
}

// NewSiteSettingsClient creates a new site settings client.
func NewSiteSettingsClient(httpClient *http.Client) *SiteSettingsClient {
	return &SiteSettingsClient{
		httpClient: httpClient,
	}
}

// Change implements discourse.SiteSettingsClient.Change. A snake_case name
// is sent unchanged; a CamelCase name is converted, so "EnableS3Uploads" and
// "enable_s3_uploads" address the same setting.
func (c *SiteSettingsClient) Change(ctx context.Context, name, value string) (*discourse.Result[*discourse.SiteSetting], error) {
	settingName := settingKey(name)
	if settingName == "" {
		return discourse.Fail[*discourse.SiteSetting]("name: cannot be blank"), nil
	}

	form := url.Values{}
	form.Set(settingName, value)

	resp, err := c.httpClient.Put(ctx, constants.APIPathSiteSettings+"/"+url.PathEscape(settingName), form)
	if err != nil {
		return nil, discourse.NewDomainError(opChangeSetting, settingName, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.SiteSetting](resp), nil
	}

	return discourse.OK(&discourse.SiteSetting{Name: settingName, Value: value}), nil
}

// settingKey returns the snake_case setting name. Digits stay attached to
// the preceding letters, as in "s3_access_key_id".
func settingKey(name string) string {
	if snakeSettingName.MatchString(name) {
		return name
	}

	return splitDigits.ReplaceAllString(strcase.ToSnake(name), "$1$2")
}
