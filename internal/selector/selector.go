// Package selector lets an operator pick which catalog items to process.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"youpull-go/internal/types"
)

// ErrQuit is returned when the operator asks to stop before any work.
var ErrQuit = errors.New("operator quit")

const notAvailable = "N/A"

// Present writes the numbered candidate list followed by the action legend.
func Present(w io.Writer, items []types.CatalogItem) {
	fmt.Fprintln(w, "\nAvailable videos:")
	for i, it := range items {
		date := it.UploadDate
		if date == "" {
			date = notAvailable
		}
		fmt.Fprintf(w, "[%d] %s (%s)\n", i+1, it.Title, date)
	}
	fmt.Fprintln(w, "[A]ll, [Q]uit")
}

// Select presents items on out, reads one line from in and resolves it.
func Select(items []types.CatalogItem, in io.Reader, out io.Writer) ([]types.CatalogItem, error) {
	Present(out, items)
	fmt.Fprint(out, "Select videos to process (e.g. 1,3,5 or A): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	return Resolve(items, line)
}

// Resolve applies a selection expression to items.
func Resolve(items []types.CatalogItem, expr string) ([]types.CatalogItem, error) {
	idx, all, err := Parse(expr, len(items))
	if err != nil {
		return nil, err
	}
	if all {
		out := make([]types.CatalogItem, len(items))
		copy(out, items)
		return out, nil
	}
	out := make([]types.CatalogItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out, nil
}

// Parse turns a selection expression into zero-based indices for a list of
// n items. "a" selects everything, "q" yields ErrQuit. Any other input is a
// comma separated list of 1-based positions; tokens that are not integers or
// fall outside [1, n] are dropped. Order and duplicates are kept.
func Parse(expr string, n int) (indices []int, all bool, err error) {
	sel := strings.ToLower(strings.TrimSpace(expr))
	switch sel {
	case "a":
		return nil, true, nil
	case "q":
		return nil, false, ErrQuit
	}

	indices = []int{}
	for _, tok := range strings.Split(sel, ",") {
		tok = strings.TrimSpace(tok)
		if !digitsOnly(tok) {
			continue
		}
		v, convErr := strconv.Atoi(tok)
		if convErr != nil || v < 1 || v > n {
			continue
		}
		indices = append(indices, v-1)
	}
	return indices, false, nil
}

// digitsOnly rejects signs and blanks that strconv.Atoi would accept or
// choke on.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
