package leads

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Download names for exported lists
const (
	CSVFileName  = "no-website-leads.csv"
	JSONFileName = "no-website-leads.json"
)

// CSVHeader is the fixed column order of CSV exports
var CSVHeader = []string{"Name", "Category", "Phone", "Email", "Address", "Rating", "Reviews", "Instagram", "Facebook"}

// WriteCSV writes set as CSV, one row per record in input order.
//
// String columns are wrapped in double quotes as-is: embedded quotes and
// commas are not escaped, so free text containing them yields rows that a
// strict CSV reader will reject. Numeric columns are unquoted and left empty
// when the value is missing or zero.
func WriteCSV(w io.Writer, set []Business) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(CSVHeader, ",")); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	for _, b := range set {
		if _, err := bw.WriteString("\n" + csvRow(b)); err != nil {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

func csvRow(b Business) string {
	var rating string
	if b.Rating != nil {
		rating = FormatRating(*b.Rating)
	}
	var reviews string
	if b.ReviewCount != 0 {
		reviews = strconv.Itoa(b.ReviewCount)
	}

	fields := []string{
		quote(b.Name),
		quote(b.Category),
		quote(b.PhoneNumber),
		quote(b.Email),
		quote(b.Address),
		rating,
		reviews,
		quote(b.SocialMedia.Instagram),
		quote(b.SocialMedia.Facebook),
	}
	return strings.Join(fields, ",")
}

func quote(s string) string {
	return `"` + s + `"`
}

// WriteJSON writes set as an indented JSON array with every record field.
func WriteJSON(w io.Writer, set []Business) error {
	if set == nil {
		set = []Business{}
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}
