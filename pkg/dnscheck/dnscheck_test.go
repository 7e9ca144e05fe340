package dnscheck

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startResolver runs a local DNS server that answers A and NS queries
// for live.example and returns empty answers for everything else.
func startResolver(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		q := r.Question[0]
		if q.Name == "live.example." {
			switch q.Qtype {
			case dns.TypeA:
				rr, _ := dns.NewRR("live.example. 60 IN A 203.0.113.40")
				m.Answer = append(m.Answer, rr)
			case dns.TypeNS:
				rr, _ := dns.NewRR("live.example. 60 IN NS ns1.hosting.example.")
				m.Answer = append(m.Answer, rr)
			}
		}
		w.WriteMsg(m)
	})

	srv := &dns.Server{PacketConn: pc, Handler: mux}
	go srv.ActivateAndServe()
	t.Cleanup(func() { srv.Shutdown() })

	// Give the goroutine a moment to start serving.
	time.Sleep(10 * time.Millisecond)
	return pc.LocalAddr().String()
}

func TestCheckResolvingDomain(t *testing.T) {
	resolver := startResolver(t)

	res, err := Check("LIVE.example.", resolver)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Domain != "live.example" {
		t.Errorf("Domain = %q, want normalised live.example", res.Domain)
	}
	if !res.Resolves {
		t.Error("expected domain to resolve")
	}
	if len(res.ARecords) != 1 || res.ARecords[0] != "203.0.113.40" {
		t.Errorf("ARecords = %v, want [203.0.113.40]", res.ARecords)
	}
	if len(res.NSRecords) != 1 {
		t.Errorf("NSRecords = %v, want one record", res.NSRecords)
	}
}

func TestCheckDeadDomain(t *testing.T) {
	resolver := startResolver(t)

	res, err := Check("gone.example", resolver)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Resolves {
		t.Error("domain without A records must not resolve")
	}
	if len(res.ARecords) != 0 {
		t.Errorf("ARecords = %v, want none", res.ARecords)
	}
}

func TestCheckRejectsEmptyDomain(t *testing.T) {
	if _, err := Check("   ", "127.0.0.1:53"); err == nil {
		t.Fatal("expected error for empty domain, got nil")
	}
}
