/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package platform

import (
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/acceptance/clients"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/starlingx/inventory/v1/system"
	"github.com/mitchellh/go-homedir"
	perrors "github.com/pkg/errors"
	"github.com/samber/lo"
	v1 "k8s.io/api/core/v1"

	"github.com/wind-river/cloud-platform-vswitch-resolver/common"
)

const (
	// Expected Secret data and environment variable keys
	AuthUrlKey                     = "OS_AUTH_URL"
	UsernameKey                    = "OS_USERNAME"
	UserIDKey                      = "OS_USERID"
	PasswordKey                    = "OS_PASSWORD"
	TenantIDKey                    = "OS_TENANT_ID"
	TenantNameKey                  = "OS_TENANT_NAME"
	DomainIDKey                    = "OS_PROJECT_DOMAIN_ID"
	DomainNameKey                  = "OS_PROJECT_DOMAIN_NAME"
	RegionNameKey                  = "OS_REGION_NAME"
	ApplicationCredentialIDKey     = "OS_APPLICATION_CREDENTIAL_ID"
	ApplicationCredentialNameKey   = "OS_APPLICATION_CREDENTIAL_NAME"
	ApplicationCredentialSecretKey = "OS_APPLICATION_CREDENTIAL_SECRET"
	ProjectIDKey                   = "OS_PROJECT_ID"
	ProjectNameKey                 = "OS_PROJECT_NAME"
	InterfaceKey                   = "OS_INTERFACE"
	DebugKey                       = "OS_DEBUG"
)

var credentialKeys = []string{
	AuthUrlKey, UsernameKey, UserIDKey, PasswordKey, TenantIDKey,
	TenantNameKey, DomainIDKey, DomainNameKey, RegionNameKey,
	ApplicationCredentialIDKey, ApplicationCredentialNameKey,
	ApplicationCredentialSecretKey, ProjectIDKey, ProjectNameKey,
	InterfaceKey, DebugKey,
}

const (
	// Well-known openstack API attribute values for the system API
	SystemEndpointName = "sysinv"
	SystemEndpointType = "platform"
)

const HTTPSNotEnabled = "server gave HTTP response to HTTPS client"

const (
	HTTPSPrefix = "https://"
	HTTPPrefix  = "http://"
)

// Credentials holds environment variable like values used to reach the
// system API.  For example, OS_AUTH_URL, OS_USERNAME, etc...
type Credentials map[string]string

// CredentialsFromEnv collects the credentials sourced into the current
// environment.
func CredentialsFromEnv() Credentials {
	result := make(Credentials)
	for _, key := range credentialKeys {
		if value, ok := os.LookupEnv(key); ok {
			result[key] = value
		}
	}

	return result
}

// CredentialsFromSecret collects the credentials stored in a secret.  String
// data takes precedence over binary data.
func CredentialsFromSecret(secret *v1.Secret) Credentials {
	result := make(Credentials)
	for key, value := range secret.Data {
		result[key] = string(value)
	}

	for key, value := range secret.StringData {
		result[key] = value
	}

	return result
}

// LoadSecret reads a system endpoint secret manifest from a file.
func LoadSecret(path string) (*v1.Secret, error) {
	filename, err := homedir.Expand(path)
	if err != nil {
		return nil, perrors.Wrapf(err, "failed to expand secret path %q", path)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, perrors.Wrapf(err, "failed to read secret file %q", filename)
	}

	secret := &v1.Secret{}
	if err := yaml.Unmarshal(data, secret); err != nil {
		return nil, perrors.Wrapf(err, "failed to parse secret file %q", filename)
	}

	return secret, nil
}

// AuthOptions builds the client authentication options.  The auth URL may be
// specified as a comma separated list of URL therefore a list of options is
// returned.
func (c Credentials) AuthOptions() ([]gophercloud.AuthOptions, error) {
	tenantID := c[TenantIDKey]
	tenantName := c[TenantNameKey]

	if projectID := c[ProjectIDKey]; projectID != "" {
		// If OS_PROJECT_ID is set, overwrite tenantID with the value.
		tenantID = projectID
	}

	if projectName := c[ProjectNameKey]; projectName != "" {
		tenantName = projectName
	}

	authURLs := common.SplitList(c[AuthUrlKey])
	if len(authURLs) == 0 {
		return nil, common.NewClientError("OS_AUTH_URL must be provided")
	}

	if c[UserIDKey] == "" && c[UsernameKey] == "" {
		return nil, common.NewClientError("OS_USERID or OS_USERNAME must be provided")
	}

	appCredential := c[ApplicationCredentialIDKey] != "" || c[ApplicationCredentialNameKey] != ""
	if c[PasswordKey] == "" && !appCredential {
		return nil, common.NewClientError("OS_PASSWORD must be provided")
	}

	if appCredential && c[ApplicationCredentialSecretKey] == "" {
		return nil, common.NewClientError("OS_APPLICATION_CREDENTIAL_SECRET must be provided")
	}

	result := lo.Map(authURLs, func(entry string, _ int) gophercloud.AuthOptions {
		ao := gophercloud.AuthOptions{
			IdentityEndpoint:            entry,
			UserID:                      c[UserIDKey],
			Username:                    c[UsernameKey],
			Password:                    c[PasswordKey],
			ApplicationCredentialID:     c[ApplicationCredentialIDKey],
			ApplicationCredentialName:   c[ApplicationCredentialNameKey],
			ApplicationCredentialSecret: c[ApplicationCredentialSecretKey],
		}

		if tenantID != "" {
			ao.TenantID = tenantID
		} else {
			ao.TenantName = tenantName
		}

		if c[DomainIDKey] != "" {
			ao.DomainID = c[DomainIDKey]
		} else {
			ao.DomainName = c[DomainNameKey]
		}

		return ao
	})

	return result, nil
}

// authenticate tries each set of options in turn and returns the first
// provider which authenticates successfully.
func authenticate(options []gophercloud.AuthOptions) (*gophercloud.ProviderClient, error) {
	var provider *gophercloud.ProviderClient
	var err error

	for _, authOptions := range options {
		// Force re-authentication on failures.
		authOptions.AllowReauth = true

	retry:
		provider, err = openstack.AuthenticatedClient(authOptions)
		if err != nil {
			if urlError, ok := err.(*url.Error); ok {
				if urlError.Err.Error() == "EOF" && strings.Contains(authOptions.IdentityEndpoint, HTTPPrefix) {
					// The endpoint has been switched to HTTPS mode so automatically
					// update our endpoint to HTTPS so that we can continue.
					authOptions.IdentityEndpoint = strings.Replace(authOptions.IdentityEndpoint, HTTPPrefix, HTTPSPrefix, 1)
					log.Info("retrying authentication request with HTTPS enabled")
					goto retry

				} else if strings.Contains(err.Error(), HTTPSNotEnabled) && strings.Contains(authOptions.IdentityEndpoint, HTTPSPrefix) {
					authOptions.IdentityEndpoint = strings.Replace(authOptions.IdentityEndpoint, HTTPSPrefix, HTTPPrefix, 1)
					log.Info("retrying authentication request with HTTPS disabled")
					goto retry
				}
			}

			authOptions.Password = "***REDACTED***" // redact for logging
			log.Error(err, "failed to authenticate client", "url", authOptions.IdentityEndpoint, "options", authOptions)

		} else {
			return provider, nil
		}
	}

	return nil, perrors.Wrap(err, "failed to authenticate against all available auth URL options")
}

// BuildPlatformClient authenticates against the identity service and returns
// a client for the system inventory API.
func BuildPlatformClient(credentials Credentials) (*gophercloud.ServiceClient, error) {
	options, err := credentials.AuthOptions()
	if err != nil {
		return nil, err
	}

	provider, err := authenticate(options)
	if err != nil {
		return nil, err
	}

	availability := gophercloud.Availability(credentials[InterfaceKey])
	if availability == "" {
		availability = gophercloud.AvailabilityPublic
	}

	// Set the destination endpoint options to point to the system API
	endpointOpts := gophercloud.EndpointOpts{
		Name:         SystemEndpointName,
		Type:         SystemEndpointType,
		Availability: availability,
		Region:       credentials[RegionNameKey],
	}

	urlEndpoint, err := provider.EndpointLocator(endpointOpts)
	if err != nil {
		err = perrors.Wrapf(err, "failed to find endpoint location, options: %+v", endpointOpts)
		return nil, err
	}

	c := &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       urlEndpoint,
		ResourceBase:   urlEndpoint}

	debug, err := strconv.ParseBool(credentials[DebugKey])
	if err == nil && debug {
		// Debug is enabled so log all API requests/responses
		t := c.HTTPClient.Transport
		if t == nil {
			t = http.DefaultTransport
		}
		c.HTTPClient.Transport = &clients.LogRoundTripper{Rt: t}
	}

	// Test the client because the authentication endpoint is different from
	// the resource endpoint therefore there is no guarantee that it works.
	_, err = system.GetDefaultSystem(c)
	if err != nil {
		err = perrors.Wrap(err, "failed to test system client connection")
		return nil, err
	}

	return c, nil
}
