package field

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luxfi/privrec/pkg/errs"
)

// WriteRows appends one line per share to w, each a whitespace-separated
// sequence of decimal field elements (spec §6: U0.txt/V0.txt format).
func WriteRows(w io.Writer, rows []Share) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, v := range row.data {
			if i > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					return errs.Wrap(errs.IOFailure, "field.WriteRows", err)
				}
			}
			if _, err := bw.WriteString(strconv.FormatInt(int64(v), 10)); err != nil {
				return errs.Wrap(errs.IOFailure, "field.WriteRows", err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return errs.Wrap(errs.IOFailure, "field.WriteRows", err)
		}
	}
	return errs.Wrap(errs.IOFailure, "field.WriteRows", bw.Flush())
}

// ReadRows parses one share of width k per line. A row whose width is not
// exactly k is a MalformedInput error (spec §4.1: "deserialization rejects
// rows whose width ≠ k").
func ReadRows(r io.Reader, k int) ([]Share, error) {
	var rows []Share
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != k {
			return nil, errs.New(errs.MalformedInput, "field.ReadRows", "line %d: width %d != expected %d", lineNo, len(fields), k)
		}
		row := NewShare(k)
		for i, tok := range fields {
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, errs.Wrap(errs.MalformedInput, "field.ReadRows", fmt.Errorf("line %d: %w", lineNo, err))
			}
			row.data[i] = Norm(n)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.IOFailure, "field.ReadRows", err)
	}
	return rows, nil
}

// WriteIndexedRow writes "idx v0 v1 ... v_{k-1}\n", the format used by
// mpc_results.txt and mpc_V_results.txt (spec §6).
func WriteIndexedRow(w io.Writer, idx int, row Share) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d", idx); err != nil {
		return errs.Wrap(errs.IOFailure, "field.WriteIndexedRow", err)
	}
	for _, v := range row.data {
		if _, err := fmt.Fprintf(bw, " %d", int64(v)); err != nil {
			return errs.Wrap(errs.IOFailure, "field.WriteIndexedRow", err)
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return errs.Wrap(errs.IOFailure, "field.WriteIndexedRow", err)
	}
	return errs.Wrap(errs.IOFailure, "field.WriteIndexedRow", bw.Flush())
}
