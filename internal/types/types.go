// Package types holds the record shapes shared by storage, the controller,
// the view and the console. Keeping them in one place prevents import
// cycles: every other package can import types without depending on the
// others.
//
// All three records are plain values. They are built when a row is read
// or when the user has typed the fields in, used once, then dropped.
package types

// Employee is a row of the employees table. The application only ever
// reads employees; there is no write path.
type Employee struct {
	ID         int64
	Name       string
	Department string
}

// Product is a row of the product table.
//
// Price is kept as a float64 because the console parses it with
// strconv.ParseFloat and prints it back in its shortest decimal form.
type Product struct {
	ID    int64
	Name  string
	Price float64
}

// Student is a row of the student table.
//
// When a Student is handed to storage for creation its ID is a
// placeholder (normally 0). The database assigns the real one.
type Student struct {
	ID     int64
	Name   string
	Course string
}
