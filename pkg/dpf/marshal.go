package dpf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// WriteKey appends one line to w in the format fixed by spec §6:
//
//	depth seed t0 final_cw (cw_seed left_bit right_bit){depth}
//
// all fields decimal, whitespace-separated.
func WriteKey(w io.Writer, k Key) error {
	bw := bufio.NewWriter(w)
	t0 := 0
	if k.T0 {
		t0 = 1
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d %d", k.Depth, k.Seed, t0, int64(k.FinalCW)); err != nil {
		return errs.Wrap(errs.IOFailure, "dpf.WriteKey", err)
	}
	for _, cw := range k.CW {
		lb, rb := 0, 0
		if cw.LeftBit {
			lb = 1
		}
		if cw.RightBit {
			rb = 1
		}
		if _, err := fmt.Fprintf(bw, " %d %d %d", cw.Seed, lb, rb); err != nil {
			return errs.Wrap(errs.IOFailure, "dpf.WriteKey", err)
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return errs.Wrap(errs.IOFailure, "dpf.WriteKey", err)
	}
	return errs.Wrap(errs.IOFailure, "dpf.WriteKey", bw.Flush())
}

// ReadKey parses one key from br in the format written by WriteKey. It
// returns io.EOF (unwrapped) when br is exhausted before any token of a
// new key is read, so callers can loop with ReadKeys-style logic.
func ReadKey(br *bufio.Reader) (Key, error) {
	var depth uint8
	var seed uint64
	var t0, finalCW int64

	n, err := fmt.Fscan(br, &depth, &seed, &t0, &finalCW)
	if n == 0 && err != nil {
		return Key{}, io.EOF
	}
	if err != nil {
		return Key{}, errs.Wrap(errs.MalformedInput, "dpf.ReadKey", err)
	}

	k := Key{Depth: depth, Seed: seed, T0: t0 != 0, FinalCW: field.Norm(finalCW)}
	if depth > 0 {
		k.CW = make([]CW, depth)
	}
	for i := uint8(0); i < depth; i++ {
		var cwSeed uint64
		var lb, rb int
		if _, err := fmt.Fscan(br, &cwSeed, &lb, &rb); err != nil {
			return Key{}, errs.Wrap(errs.MalformedInput, "dpf.ReadKey", err)
		}
		k.CW[i] = CW{Seed: cwSeed, LeftBit: lb != 0, RightBit: rb != 0}
	}
	return k, nil
}

// ReadKeys reads every key present in r until EOF.
func ReadKeys(r io.Reader) ([]Key, error) {
	br := bufio.NewReader(r)
	var keys []Key
	for {
		k, err := ReadKey(br)
		if err == io.EOF {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
}

// WriteKeys writes one line per key, in order.
func WriteKeys(w io.Writer, keys []Key) error {
	for _, k := range keys {
		if err := WriteKey(w, k); err != nil {
			return err
		}
	}
	return nil
}
