package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const cursorKind = "pages"

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeCursor captures the loaded pages of p for a list of total items.
func EncodeCursor(p *Paginator, total int) string {
	pages := p.LoadedPages()
	parts := make([]string, len(pages))
	for i, n := range pages {
		parts[i] = strconv.Itoa(n)
	}
	return EncodeMultiFieldToken(cursorKind, strconv.Itoa(p.PageSize()), strings.Join(parts, ","), strconv.Itoa(total))
}

// DecodeCursor restores a paginator from token. An empty token, a token
// issued for a different page size, or one issued when the list had a
// different length yields a fresh paginator at the first page. The loaded
// pages must be exactly 0..k with k no later than the last page.
func DecodeCursor(token string, pageSize, total int) (*Paginator, error) {
	p := NewPaginator(pageSize)
	if token == "" {
		return p, nil
	}
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return nil, err
	}
	if len(fields) != 4 || fields[0] != cursorKind {
		return nil, fmt.Errorf("invalid pagination token format (fields)")
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (page size): %w", err)
	}
	issuedFor, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (total): %w", err)
	}
	if size != p.PageSize() || issuedFor != total {
		return p, nil
	}
	last := max(totalPages(total, size)-1, 0)
	for i, s := range strings.Split(fields[2], ",") {
		n, err := strconv.Atoi(s)
		if err != nil || n != i {
			return nil, fmt.Errorf("invalid pagination token format (page %q): pages must run 0..k", s)
		}
		if n > last {
			return nil, fmt.Errorf("invalid pagination token format (page %d beyond last page %d)", n, last)
		}
		p.LoadPage(n)
	}
	return p, nil
}
