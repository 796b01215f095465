package helper_test

import (
	"net"
	"testing"

	"github.com/luxfi/privrec/pkg/field"
	"github.com/luxfi/privrec/pkg/netio"
	"github.com/luxfi/privrec/pkg/party"
	"github.com/luxfi/privrec/protocols/update/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, addr string, role party.Role) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	require.NoError(t, netio.SendByte(conn, role.Tag()))
	return conn
}

func TestServeSingleBatch(t *testing.T) {
	srv, err := helper.Listen("127.0.0.1:0", 1)
	require.NoError(t, err)
	defer srv.Close()

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	c0 := dial(t, srv.Addr().String(), party.P0)
	defer c0.Close()
	c1 := dial(t, srv.Addr().String(), party.P1)
	defer c1.Close()

	const k = 5
	require.NoError(t, netio.SendSigned(c0, int64(k)))
	t0, err := netio.RecvTriples(c0, k)
	require.NoError(t, err)
	t1, err := netio.RecvTriples(c1, k)
	require.NoError(t, err)

	require.Len(t, t0, k)
	require.Len(t, t1, k)

	aFull := field.Add(t0[0].A, t1[0].A)
	for i := 0; i < k; i++ {
		assert.Equal(t, aFull, field.Add(t0[i].A, t1[i].A), "all triples in a batch share a single a")
		bFull := field.Add(t0[i].B, t1[i].B)
		cFull := field.Add(t0[i].C, t1[i].C)
		assert.Equal(t, field.Mul(aFull, bFull), cFull)
	}

	require.NoError(t, netio.SendSigned(c0, 0))
	require.NoError(t, <-done)
}

func TestServeRejectsDuplicateRole(t *testing.T) {
	srv, err := helper.Listen("127.0.0.1:0", 2)
	require.NoError(t, err)
	defer srv.Close()

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	c0 := dial(t, srv.Addr().String(), party.P0)
	defer c0.Close()
	c1 := dial(t, srv.Addr().String(), party.P0)
	defer c1.Close()

	require.Error(t, <-done)
}
