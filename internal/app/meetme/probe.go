package meetme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/Meetme/internal/core"
	"github.com/dkeye/Meetme/internal/domain"
)

const DefaultProbeTimeout = 3 * time.Second

// noConferences is how an idle switch answers a conference list.
const noConferences = "no active conferences"

// DefaultMinVersion is the first switch release with conference listing.
var DefaultMinVersion = domain.Version{Major: 13}

// ProbeResult is what the switch reported at startup. Occupancy is
// diagnostic only; live membership is rebuilt from join/leave events.
type ProbeResult struct {
	Version   domain.Version
	Occupancy map[domain.RoomNumber]int
}

// probe asks the switch to list its conferences and tallies the members of
// each one. Any failure means the capability is not there.
func probe(ctx context.Context, sw core.Switch, minVersion domain.Version, timeout time.Duration) (ProbeResult, error) {
	res := ProbeResult{
		Version:   sw.Version(),
		Occupancy: make(map[domain.RoomNumber]int),
	}
	if !res.Version.AtLeast(minVersion) {
		return res, fmt.Errorf("%w: have %s, need %s", ErrVersionMismatch, res.Version, minVersion)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	action := domain.NewAction(domain.ActionConfbridgeList)
	resp, err := sw.SendEventGeneratingAction(ctx, action)
	if isEmptyList(err) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w", action.Name, err)
	}
	if resp == nil {
		return res, fmt.Errorf("%w: no response", ErrMalformedResponse)
	}
	for _, event := range resp.Events {
		switch e := event.(type) {
		case *domain.ConfbridgeListEvent:
			res.Occupancy[e.Conference]++
		case *domain.ConfbridgeListCompleteEvent:
		default:
			return res, fmt.Errorf("%w: unexpected %s event", ErrMalformedResponse, event.EventType())
		}
	}
	return res, nil
}

// isEmptyList reports whether the switch rejected the list only because no
// conference is running. The capability is there in that case.
func isEmptyList(err error) bool {
	var ae *domain.ActionError
	if !errors.As(err, &ae) {
		return false
	}
	return strings.Contains(strings.ToLower(ae.Message), noConferences)
}
