// Package view prints records to the console.
//
// Every record is written on its own line with its fields separated by a
// single space, in the order storage returned them:
//
//	1 Alice Engineering
//	2 Widget 9.99
//
// Callers pass the writer explicitly (os.Stdout in production, a buffer
// in tests) so nothing here touches global state.
package view

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aanand-mishra/crud-console/internal/types"
)

// Employees writes `id name department` per employee.
func Employees(w io.Writer, employees []types.Employee) error {
	for _, e := range employees {
		if _, err := fmt.Fprintf(w, "%d %s %s\n", e.ID, e.Name, e.Department); err != nil {
			return err
		}
	}
	return nil
}

// Products writes `id name price` per product.
func Products(w io.Writer, products []types.Product) error {
	for _, p := range products {
		if _, err := fmt.Fprintf(w, "%d %s %s\n", p.ID, p.Name, FormatPrice(p.Price)); err != nil {
			return err
		}
	}
	return nil
}

// Students writes `id name course` per student.
func Students(w io.Writer, students []types.Student) error {
	for _, s := range students {
		if _, err := fmt.Fprintf(w, "%d %s %s\n", s.ID, s.Name, s.Course); err != nil {
			return err
		}
	}
	return nil
}

// FormatPrice renders a price the way the console has always shown
// doubles, so scripts that parse the listing keep working:
//
//	9.99        -> "9.99"
//	10          -> "10.0"            (always at least one fractional digit)
//	0.0005      -> "5.0E-4"          (below 1e-3: scientific)
//	12345678.9  -> "1.23456789E7"    (1e7 and above: scientific)
//
// Digits are the shortest that round-trip to the same float64.
func FormatPrice(price float64) string {
	switch {
	case math.IsNaN(price):
		return "NaN"
	case math.IsInf(price, 1):
		return "Infinity"
	case math.IsInf(price, -1):
		return "-Infinity"
	case price == 0:
		if math.Signbit(price) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(price); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(price, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 'E' gives "1.5E+07" / "1E-04"; drop the exponent's sign and padding.
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(price, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
