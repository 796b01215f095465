package party

import (
	"net"
	"os"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/netio"
	"github.com/luxfi/privrec/pkg/party"
)

// Hosts resolves the three fixed hostnames spec.md §6 names, overridable
// by P0_HOST/P1_HOST/P2_HOST (SPEC_FULL §4.6), defaulting to p0/p1/p2.
type Hosts struct {
	P0, P1, P2 string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DefaultHosts reads P0_HOST/P1_HOST/P2_HOST.
func DefaultHosts() Hosts {
	return Hosts{
		P0: envOr("P0_HOST", "p0"),
		P1: envOr("P1_HOST", "p1"),
		P2: envOr("P2_HOST", "p2"),
	}
}

// Connect dials the helper on port 9002 and establishes the peer
// connection: P0 dials P1 on port 9001, P1 listens and accepts
// (spec.md §6). The helper socket is then sent this party's one-byte
// role tag; the peer socket carries no handshake.
func Connect(role party.Role, hosts Hosts) (peerConn, helperConn net.Conn, err error) {
	helperConn, err = net.Dial("tcp", net.JoinHostPort(hosts.P2, "9002"))
	if err != nil {
		return nil, nil, errs.Wrap(errs.IOFailure, "party.Connect", err)
	}

	if role == party.P0 {
		peerConn, err = net.Dial("tcp", net.JoinHostPort(hosts.P1, "9001"))
		if err != nil {
			helperConn.Close()
			return nil, nil, errs.Wrap(errs.IOFailure, "party.Connect", err)
		}
	} else {
		ln, lerr := net.Listen("tcp", ":9001")
		if lerr != nil {
			helperConn.Close()
			return nil, nil, errs.Wrap(errs.IOFailure, "party.Connect", lerr)
		}
		defer ln.Close()
		peerConn, err = ln.Accept()
		if err != nil {
			helperConn.Close()
			return nil, nil, errs.Wrap(errs.IOFailure, "party.Connect", err)
		}
	}

	if err := netio.SendByte(helperConn, role.Tag()); err != nil {
		peerConn.Close()
		helperConn.Close()
		return nil, nil, err
	}

	return peerConn, helperConn, nil
}
