package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type RefKind int

const (
	RefID RefKind = iota
	RefHandle
	RefUsername
)

// ChannelRef is a parsed channel reference: an ID, an @handle, or a legacy
// username.
type ChannelRef struct {
	Kind  RefKind
	Value string
}

func (r ChannelRef) String() string {
	switch r.Kind {
	case RefHandle:
		return "@" + r.Value
	case RefUsername:
		return "user/" + r.Value
	}
	return r.Value
}

// IsChannelID reports whether s has the shape of a channel ID.
func IsChannelID(s string) bool {
	return len(s) == 24 && strings.HasPrefix(s, "UC")
}

// ParseChannelRef accepts a channel ID, an @handle, a bare handle, or a
// channel URL using /channel/, /@, or /user/ paths.
func ParseChannelRef(ref string) (ChannelRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ChannelRef{}, fmt.Errorf("empty channel reference")
	}

	if strings.Contains(ref, "youtube.com") || strings.HasPrefix(ref, "http") {
		return parseChannelURL(ref)
	}

	switch {
	case strings.HasPrefix(ref, "@"):
		return ChannelRef{Kind: RefHandle, Value: strings.TrimPrefix(ref, "@")}, nil
	case IsChannelID(ref):
		return ChannelRef{Kind: RefID, Value: ref}, nil
	case strings.ContainsAny(ref, "/ ?"):
		return ChannelRef{}, fmt.Errorf("unrecognised channel reference %q", ref)
	}
	return ChannelRef{Kind: RefHandle, Value: ref}, nil
}

func parseChannelURL(raw string) (ChannelRef, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ChannelRef{}, fmt.Errorf("parse channel url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return ChannelRef{}, fmt.Errorf("channel url %q has no path", raw)
	}

	switch {
	case strings.HasPrefix(parts[0], "@"):
		return ChannelRef{Kind: RefHandle, Value: strings.TrimPrefix(parts[0], "@")}, nil
	case parts[0] == "channel" && len(parts) > 1 && parts[1] != "":
		return ChannelRef{Kind: RefID, Value: parts[1]}, nil
	case parts[0] == "user" && len(parts) > 1 && parts[1] != "":
		return ChannelRef{Kind: RefUsername, Value: parts[1]}, nil
	}
	return ChannelRef{}, fmt.Errorf("unrecognised channel url %q", raw)
}

var durationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseDurationSeconds converts an ISO 8601 duration such as PT1M30S.
// Unparseable input and the P0D used for upcoming broadcasts yield 0.
func parseDurationSeconds(duration string) int {
	matches := durationRe.FindStringSubmatch(duration)
	if matches == nil {
		return 0
	}

	units := []int{86400, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if matches[i+1] == "" {
			continue
		}
		if n, err := strconv.Atoi(matches[i+1]); err == nil {
			total += n * unit
		}
	}
	return total
}
