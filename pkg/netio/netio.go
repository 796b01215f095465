// Package netio implements the raw binary wire operations the protocol's
// sockets carry: little-endian 64-bit scalars and field-element vectors,
// and Beaver-triple batches (spec §6). Every blocking call is guarded by a
// deadline so a stalled peer surfaces as an IOFailure instead of hanging
// the query loop forever (spec §5).
package netio

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/luxfi/privrec/pkg/beaver"
	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// DefaultTimeout bounds every individual socket operation. It is
// overridable via the PRIVREC_IO_TIMEOUT environment variable (seconds),
// per SPEC_FULL §5.
var DefaultTimeout = defaultTimeoutFromEnv()

func defaultTimeoutFromEnv() time.Duration {
	if v := os.Getenv("PRIVREC_IO_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 30 * time.Second
}

func withDeadline(conn net.Conn) func() {
	_ = conn.SetDeadline(time.Now().Add(DefaultTimeout))
	return func() { _ = conn.SetDeadline(time.Time{}) }
}

// SendVal writes a single little-endian 64-bit field element (spec §6:
// "single 8-byte little-endian value for scalar exchanges and tags").
func SendVal(conn net.Conn, v field.Elem) error {
	defer withDeadline(conn)()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := conn.Write(buf[:])
	return errs.Wrap(errs.IOFailure, "netio.SendVal", err)
}

// RecvVal reads a single little-endian 64-bit field element.
func RecvVal(conn net.Conn) (field.Elem, error) {
	defer withDeadline(conn)()
	var buf [8]byte
	if _, err := io.ReadFull(conn, buf[:]); err != nil {
		return 0, errs.Wrap(errs.IOFailure, "netio.RecvVal", err)
	}
	return field.Norm(int64(binary.LittleEndian.Uint64(buf[:]))), nil
}

// SendSigned writes a raw little-endian signed 64-bit integer, used for
// the Helper's triple-count request and the -1 dump-request sentinel
// (spec §6), neither of which is a field element.
func SendSigned(conn net.Conn, v int64) error {
	defer withDeadline(conn)()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := conn.Write(buf[:])
	return errs.Wrap(errs.IOFailure, "netio.SendSigned", err)
}

// RecvSigned reads a raw little-endian signed 64-bit integer.
func RecvSigned(conn net.Conn) (int64, error) {
	defer withDeadline(conn)()
	var buf [8]byte
	if _, err := io.ReadFull(conn, buf[:]); err != nil {
		return 0, errs.Wrap(errs.IOFailure, "netio.RecvSigned", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// SendByte writes a single byte, used for the Helper role handshake
// (spec §4.4, §6).
func SendByte(conn net.Conn, b byte) error {
	defer withDeadline(conn)()
	_, err := conn.Write([]byte{b})
	return errs.Wrap(errs.IOFailure, "netio.SendByte", err)
}

// RecvByte reads a single byte.
func RecvByte(conn net.Conn) (byte, error) {
	defer withDeadline(conn)()
	var buf [1]byte
	if _, err := io.ReadFull(conn, buf[:]); err != nil {
		return 0, errs.Wrap(errs.IOFailure, "netio.RecvByte", err)
	}
	return buf[0], nil
}

// SendVec writes a share's k field elements as k little-endian 64-bit
// words (spec §6).
func SendVec(conn net.Conn, s field.Share) error {
	defer withDeadline(conn)()
	buf := make([]byte, s.Len()*8)
	for i := 0; i < s.Len(); i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(s.At(i)))
	}
	_, err := conn.Write(buf)
	return errs.Wrap(errs.IOFailure, "netio.SendVec", err)
}

// RecvVec reads a share of exactly k field elements.
func RecvVec(conn net.Conn, k int) (field.Share, error) {
	defer withDeadline(conn)()
	buf := make([]byte, k*8)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return field.Share{}, errs.Wrap(errs.IOFailure, "netio.RecvVec", err)
	}
	out := field.NewShare(k)
	for i := 0; i < k; i++ {
		out.Set(i, field.Norm(int64(binary.LittleEndian.Uint64(buf[i*8:]))))
	}
	return out, nil
}

// SendTriples writes k Beaver triples as the packed binary array of
// spec §6.
func SendTriples(conn net.Conn, triples []beaver.Triple) error {
	defer withDeadline(conn)()
	return beaver.WriteTriples(conn, triples)
}

// RecvTriples reads exactly k Beaver triples.
func RecvTriples(conn net.Conn, k int) ([]beaver.Triple, error) {
	defer withDeadline(conn)()
	return beaver.ReadTriples(conn, k)
}
