package uri

type schemeInfo struct {
	port    uint16
	hasPort bool
}

// Special schemes and their default ports.
// Reference: https://url.spec.whatwg.org/#special-scheme
var specialSchemes = map[string]schemeInfo{
	"ftp":    {port: 21, hasPort: true},
	"file":   {},
	"gopher": {port: 70, hasPort: true},
	"http":   {port: 80, hasPort: true},
	"https":  {port: 443, hasPort: true},
	"ws":     {port: 80, hasPort: true},
	"wss":    {port: 443, hasPort: true},
}

// DefaultPort returns the default port of a special scheme. The scheme must
// already be lowercase. "file" is special but has no default port.
func DefaultPort(scheme string) (uint16, bool) {
	info, ok := specialSchemes[scheme]
	if !ok || !info.hasPort {
		return 0, false
	}
	return info.port, true
}

func IsSpecial(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

func IsDefaultPort(scheme string, port uint16) bool {
	dport, ok := DefaultPort(scheme)
	return ok && dport == port
}
