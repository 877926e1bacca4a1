package radarr

import (
	"context"

	"collectarr/internal/services"
)

// DefaultQualityProfileID returns the id of the first quality profile the
// server lists. A server without profiles is a configuration error.
func (c *Client) DefaultQualityProfileID(ctx context.Context) (int, error) {
	var profiles []qualityProfileDTO
	if err := c.getJSON(ctx, "list quality profiles", "/qualityprofile", nil, &profiles); err != nil {
		return 0, err
	}
	if len(profiles) == 0 {
		return 0, services.Wrap(services.ErrConfiguration, component, "list quality profiles", "no quality profiles found", nil)
	}
	return profiles[0].ID, nil
}

// DefaultRootFolderPath returns the path of the first root folder the server
// lists. A server without root folders is a configuration error.
func (c *Client) DefaultRootFolderPath(ctx context.Context) (string, error) {
	var folders []rootFolderDTO
	if err := c.getJSON(ctx, "list root folders", "/rootfolder", nil, &folders); err != nil {
		return "", err
	}
	if len(folders) == 0 {
		return "", services.Wrap(services.ErrConfiguration, component, "list root folders", "no root folders found", nil)
	}
	return folders[0].Path, nil
}

// SystemStatus reports the server application name and version.
func (c *Client) SystemStatus(ctx context.Context) (SystemStatus, error) {
	var status SystemStatus
	if err := c.getJSON(ctx, "system status", "/system/status", nil, &status); err != nil {
		return SystemStatus{}, err
	}
	return status, nil
}
