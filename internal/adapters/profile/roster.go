package profile

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/ghostboard/pkg/metrics"
)

const ghostsPath = "/api/ghosts"

// RosterFetcher returns the display names of a pack's ghost roster.
type RosterFetcher interface {
	Roster(ctx context.Context, packID int) ([]string, error)
}

var _ RosterFetcher = (*Client)(nil)

type rosterData struct {
	Ghosts []struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"ghosts"`
}

// Roster calls GET {base}/api/ghosts?pack_id={id}. Names come from "name",
// then "full_name"; ghosts with neither are returned as empty strings so
// positions line up with the upstream list.
func (c *Client) Roster(ctx context.Context, packID int) ([]string, error) {
	if !c.Enabled() {
		metrics.RecordRosterFetch("disabled")
		return nil, ErrDisabled
	}
	if packID <= 0 {
		return nil, ErrBadInput
	}

	var data rosterData
	err := c.retry(ctx, func() error {
		data = rosterData{}
		return c.getJSON(ctx, ghostsPath, url.Values{"pack_id": {strconv.Itoa(packID)}}, &data)
	})
	if err != nil {
		metrics.RecordRosterFetch("error")
		return nil, err
	}

	names := make([]string, len(data.Ghosts))
	for i, g := range data.Ghosts {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			name = strings.TrimSpace(g.FullName)
		}
		names[i] = name
	}
	metrics.RecordRosterFetch("ok")
	return names, nil
}
