// Package geoip implements litcrawl.HostLocator using a MaxMind GeoLite2
// City database.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/fwojciec/litcrawl"
	"github.com/oschwald/geoip2-golang"
)

var _ litcrawl.HostLocator = (*Locator)(nil)

// CityReader looks up an address in a geolocation database.
type CityReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// Resolver resolves hostnames to addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Locator resolves hostnames and geolocates their first address.
type Locator struct {
	db       CityReader
	resolver Resolver
	close    func() error
}

// Open loads the database at path. A missing database returns ENOTFOUND.
func Open(path string) (*Locator, error) {
	reader, err := geoip2.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, litcrawl.Errorf(litcrawl.ENOTFOUND, "geolocation database not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open geolocation database: %w", err)
	}
	l := NewLocator(reader, net.DefaultResolver)
	l.close = reader.Close
	return l, nil
}

// NewLocator returns a Locator over an already opened database.
func NewLocator(db CityReader, resolver Resolver) *Locator {
	return &Locator{db: db, resolver: resolver}
}

// LocateHost resolves host and returns the country of its first address.
// IP literals are looked up directly.
func (l *Locator) LocateHost(ctx context.Context, host string) (*litcrawl.Location, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		addrs, err := l.resolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", host, err)
		}
		if len(addrs) == 0 {
			return nil, litcrawl.Errorf(litcrawl.ENOTFOUND, "no addresses for %s", host)
		}
		ip = addrs[0].IP
	}

	record, err := l.db.City(ip)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ip, err)
	}
	if record.Country.IsoCode == "" {
		return nil, litcrawl.Errorf(litcrawl.ENOTFOUND, "address %s not in geolocation database", ip)
	}

	return &litcrawl.Location{
		IP:          ip.String(),
		Country:     record.Country.Names["en"],
		CountryCode: record.Country.IsoCode,
	}, nil
}

// Close releases the database.
func (l *Locator) Close() error {
	if l.close == nil {
		return nil
	}
	return l.close()
}
