package netio

import (
	"net"

	"github.com/luxfi/privrec/pkg/beaver"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
	"golang.org/x/sync/errgroup"
)

// ExchangeVec sends local to conn and concurrently receives the peer's
// k-element share, avoiding the deadlock that a naive send-then-receive
// would risk when both parties write before either reads (spec §4.5.1
// step 3, §4.5.5 step 2; grounded on send_vec/recv_vec being invoked
// back-to-back in the original mpc.hpp round logic).
func ExchangeVec(conn net.Conn, local field.Share) (field.Share, error) {
	var peer field.Share
	var g errgroup.Group
	g.Go(func() error { return SendVec(conn, local) })
	g.Go(func() error {
		var err error
		peer, err = RecvVec(conn, local.Len())
		return err
	})
	if err := g.Wait(); err != nil {
		return field.Share{}, errs.Wrap(errs.IOFailure, "netio.ExchangeVec", err)
	}
	return peer, nil
}

// ExchangeVal is ExchangeVec's scalar counterpart.
func ExchangeVal(conn net.Conn, local field.Elem) (field.Elem, error) {
	var peer field.Elem
	var g errgroup.Group
	g.Go(func() error { return SendVal(conn, local) })
	g.Go(func() error {
		var err error
		peer, err = RecvVal(conn)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, errs.Wrap(errs.IOFailure, "netio.ExchangeVal", err)
	}
	return peer, nil
}

// RequestTriples asks the Helper for k fresh Beaver triples over conn and
// returns this party's half of the batch (spec §4.4). Only P0 sends the
// count: the Helper reads k once from the P0 socket alone, so P1 must
// not also write it — doing so would leave an unread int64 per call
// piling up in the socket buffer.
func RequestTriples(conn net.Conn, k int, isP0 bool) ([]beaver.Triple, error) {
	if isP0 {
		if err := SendSigned(conn, int64(k)); err != nil {
			return nil, errs.Wrap(errs.IOFailure, "netio.RequestTriples", err)
		}
	}
	return RecvTriples(conn, k)
}
