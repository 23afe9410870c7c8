package importer

import (
	"fmt"
	"net/url"
	"strings"
)

// Environment is the host's location: where the share string comes from and
// how the host drops it once consumed.
type Environment interface {
	Param(key string) (string, bool)
	ClearParams() error
}

// Location is an Environment over a URL, like a browser address bar.
// ClearParams strips the query and reports the clean URL through OnClear.
type Location struct {
	URL     *url.URL
	OnClear func(clean string) error
}

// ParseLocation accepts either a full share link or a bare share string.
func ParseLocation(raw string) (*Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &Location{URL: &url.URL{}}, nil
	}
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return &Location{URL: &url.URL{RawQuery: url.Values{Param: {raw}}.Encode()}}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse share link: %w", err)
	}
	return &Location{URL: u}, nil
}

func (l *Location) Param(key string) (string, bool) {
	q := l.URL.Query()
	if !q.Has(key) {
		return "", false
	}
	return q.Get(key), true
}

func (l *Location) ClearParams() error {
	l.URL.RawQuery = ""
	l.URL.ForceQuery = false
	if l.OnClear != nil {
		return l.OnClear(l.URL.String())
	}
	return nil
}
