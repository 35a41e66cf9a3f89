package chat

import "net/url"

// secretParams are query parameters known to carry credentials.
var secretParams = []string{"key", "api_key", "apikey", "token", "access_token"}

// RedactURL masks credential-bearing query parameters so the URL is safe to
// log. Malformed URLs are replaced entirely rather than risk leaking a key.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable url redacted]"
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "***")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
