package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// DNSClass summarizes how an endpoint host resolved. It only feeds the
// transport-failure log entry; it never changes the Outcome.
type DNSClass string

const (
	DNSResolves  DNSClass = "RESOLVES"
	DNSNXDomain  DNSClass = "NXDOMAIN"
	DNSNoRecord  DNSClass = "NO_A_RECORD"
	DNSTemporary DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSIPLiteral DNSClass = "IP_LITERAL"
)

type DNSDiagnosis struct {
	Host          string
	Class         DNSClass
	Addrs         []string
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// diagnoseHost looks the endpoint host up so a refused or timed-out request
// can be told apart from a name that does not resolve at all.
func diagnoseHost(ctx context.Context, r *net.Resolver, host string) DNSDiagnosis {
	d := DNSDiagnosis{Host: strings.TrimSpace(host)}
	if net.ParseIP(d.Host) != nil {
		d.Class = DNSIPLiteral
		d.Addrs = []string{d.Host}
		return d
	}
	if r == nil {
		r = net.DefaultResolver
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	addrs, err := r.LookupHost(ctx, d.Host)
	if err == nil && len(addrs) > 0 {
		d.Class = DNSResolves
		d.Addrs = addrs
		return d
	}

	d.Class = DNSTemporary
	if err == nil {
		d.Class = DNSNoRecord
		return d
	}
	d.ResolverError = err.Error()
	var de *net.DNSError
	if errors.As(err, &de) && de.IsNotFound {
		d.Class = DNSNXDomain
		if ns, nerr := r.LookupNS(ctx, d.Host); nerr == nil && len(ns) > 0 {
			d.Class = DNSNoRecord
		}
	}
	return d
}
