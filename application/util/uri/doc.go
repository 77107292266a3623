// Package uri implements the host part of URL parsing: classifying a host
// as a domain, an IPv4 address, an IPv6 literal or an opaque host, and the
// registry of special schemes.
//
// Reference:
//
// - https://url.spec.whatwg.org/#hosts-(domains-and-ip-addresses)
//
// - https://url.spec.whatwg.org/#special-scheme
package uri
