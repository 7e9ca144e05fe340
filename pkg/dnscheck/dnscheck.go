// Package dnscheck performs a local DNS pre-flight for a suspected
// phishing domain before it is reported: a dead domain is usually not
// worth a report, and the records help the analyst gauge the host.
package dnscheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// DefaultResolver is the nameserver queried when none is configured.
const DefaultResolver = "8.8.8.8:53"

// Result summarises the DNS posture of a domain.
type Result struct {
	Domain    string        `json:"domain" yaml:"domain"`
	Resolves  bool          `json:"resolves" yaml:"resolves"`
	ARecords  []string      `json:"a_records" yaml:"a_records"`
	NSRecords []string      `json:"ns_records" yaml:"ns_records"`
	Latency   time.Duration `json:"latency" yaml:"latency"`
}

// Check queries A and NS records for domain against resolver. A domain
// with no A records is reported as non-resolving, not as an error; errors
// are reserved for transport failures.
func Check(domain, resolver string) (*Result, error) {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return nil, fmt.Errorf("domain must not be empty")
	}
	if resolver == "" {
		resolver = DefaultResolver
	}

	start := time.Now()
	client := new(dns.Client)

	aRecords, err := queryA(client, domain, resolver)
	if err != nil {
		return nil, err
	}
	nsRecords, err := queryNS(client, domain, resolver)
	if err != nil {
		return nil, err
	}

	return &Result{
		Domain:    domain,
		Resolves:  len(aRecords) > 0,
		ARecords:  aRecords,
		NSRecords: nsRecords,
		Latency:   time.Since(start),
	}, nil
}

func queryA(client *dns.Client, domain, resolver string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	resp, _, err := client.Exchange(msg, resolver)
	if err != nil {
		return nil, fmt.Errorf("query A %s: %w", domain, err)
	}

	var records []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			records = append(records, a.A.String())
		}
	}
	return records, nil
}

func queryNS(client *dns.Client, domain, resolver string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeNS)

	resp, _, err := client.Exchange(msg, resolver)
	if err != nil {
		return nil, fmt.Errorf("query NS %s: %w", domain, err)
	}

	var records []string
	for _, rr := range resp.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			records = append(records, strings.TrimSuffix(ns.Ns, "."))
		}
	}
	return records, nil
}
