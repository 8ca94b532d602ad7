package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"jobdigest/internal/listing"
)

// Rows walks every table in the rendered HTML and pulls raw listing
// rows out of the qualifying ones. A table qualifies when its headers
// (title-cased) include "Company" and either "Role" or "Position";
// anything else is skipped entirely rather than partially included.
func Rows(html []byte) ([]listing.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []listing.RawRow
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		headers := headerNames(table)
		if len(headers) == 0 {
			return
		}
		if !contains(headers, "Company") {
			return
		}
		if !contains(headers, "Role") && !contains(headers, "Position") {
			return
		}
		out = append(out, tableRows(table, headers)...)
	})

	return out, nil
}

func headerNames(table *goquery.Selection) []string {
	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, titleCase(cellText(th)))
	})
	return headers
}

func tableRows(table *goquery.Selection, headers []string) []listing.RawRow {
	body := table.Find("tbody")
	if body.Length() == 0 {
		body = table
	}

	var rows []listing.RawRow
	body.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return // header or separator row
		}

		raw := listing.RawRow{Cells: make(map[string]string, len(headers))}
		for i, name := range headers {
			if i >= cells.Length() {
				break
			}
			cell := cells.Eq(i)
			raw.Cells[name] = cellText(cell)
			if name == "Application" {
				if href, ok := cell.Find("a[href]").First().Attr("href"); ok {
					raw.ApplicationURL = strings.TrimSpace(href)
				}
			}
		}
		rows = append(rows, raw)
	})

	return rows
}

// cellText joins a cell's text nodes with single spaces, the same way
// the upstream table reads when rendered.
func cellText(sel *goquery.Selection) string {
	return listing.CleanText(sel.Text())
}

// titleCase uppercases the first letter of each word and lowercases the
// rest, so "ROLE", "role" and "Role" all key the same column.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
