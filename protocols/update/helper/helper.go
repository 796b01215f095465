// Package helper implements the Beaver-triple dealer (spec.md §4.4): a
// long-lived TCP server that accepts exactly two peer connections, sorts
// them by role, and on request produces k additively-split multiplication
// triples sharing a single `a` per batch.
package helper

import (
	"math/rand"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/privrec/pkg/beaver"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
	"github.com/luxfi/privrec/pkg/party"
)

// Server accepts exactly two connections on a fixed listener and serves
// Beaver triples to whichever pair completes the role handshake first.
type Server struct {
	ln  net.Listener
	rng *rand.Rand
}

// Listen opens a TCP listener on addr.
func Listen(addr string, seed int64) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errs.Wrap(errs.IOFailure, "helper.Listen", err)
	}
	return &Server{ln: ln, rng: rand.New(rand.NewSource(seed))}, nil
}

// Addr returns the listener's address, useful when addr was ":0" in tests.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Close closes the underlying listener.
func (s *Server) Close() error { return s.ln.Close() }

// acceptPair accepts exactly two connections and sorts them into
// conns[P0], conns[P1] by their one-byte role handshake (spec.md §4.4:
// "each connecting peer first writes a one-byte role tag ... the helper
// sorts the two sockets by role and rejects if the two tags are not
// {0,1}").
func (s *Server) acceptPair() (conns [2]net.Conn, err error) {
	var raw [2]net.Conn
	for i := 0; i < 2; i++ {
		raw[i], err = s.ln.Accept()
		if err != nil {
			return conns, errs.Wrap(errs.IOFailure, "helper.acceptPair", err)
		}
	}

	var roles [2]party.Role
	var g errgroup.Group
	for i := range raw {
		i := i
		g.Go(func() error {
			tag, err := netio.RecvByte(raw[i])
			if err != nil {
				return err
			}
			role, ok := party.RoleFromTag(tag)
			if !ok {
				return errs.New(errs.InvariantViolation, "helper.acceptPair", "invalid role tag %d", tag)
			}
			roles[i] = role
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		raw[0].Close()
		raw[1].Close()
		return conns, err
	}
	if roles[0] == roles[1] {
		raw[0].Close()
		raw[1].Close()
		return conns, errs.New(errs.InvariantViolation, "helper.acceptPair", "both peers claimed role %s", roles[0])
	}

	conns[roles[0]] = raw[0]
	conns[roles[1]] = raw[1]
	return conns, nil
}

// Serve runs the triple-generation loop for one pair of peers until the
// P0 socket requests shutdown (k<=0) or a connection fails. It returns
// after that single pair's session ends; the helper is not multi-tenant
// (spec.md §5: "serves exactly one pair of peers per process lifetime").
func (s *Server) Serve() error {
	conns, err := s.acceptPair()
	if err != nil {
		return err
	}
	defer conns[party.P0].Close()
	defer conns[party.P1].Close()

	for {
		k, err := netio.RecvSigned(conns[party.P0])
		if err != nil {
			return err
		}
		if k <= 0 {
			return nil
		}

		t0, t1, err := s.generateBatch(int(k))
		if err != nil {
			return err
		}

		var g errgroup.Group
		g.Go(func() error { return netio.SendTriples(conns[party.P0], t0) })
		g.Go(func() error { return netio.SendTriples(conns[party.P1], t1) })
		if err := g.Wait(); err != nil {
			return err
		}
	}
}

// generateBatch samples a single shared `a` and k independent b/c pairs,
// splitting each additively (spec.md §4.4). All k triples in the batch
// share the same `a` component.
func (s *Server) generateBatch(k int) (t0, t1 []beaver.Triple, err error) {
	a := field.Elem(s.rng.Int63n(field.P))
	a0 := field.Elem(s.rng.Int63n(field.P))
	t0 = make([]beaver.Triple, k)
	t1 = make([]beaver.Triple, k)
	for i := 0; i < k; i++ {
		b := field.Elem(s.rng.Int63n(field.P))
		ta, tb := beaver.SplitWithA(a0, a, b, s.rng)
		t0[i], t1[i] = ta, tb
	}
	return t0, t1, nil
}
