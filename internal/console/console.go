// Package console runs the numbered menus that drive the application.
//
// Three menus form a small state machine:
//
//	top     1 employees   2 -> product   3 -> student   4 exit
//	product 1 add   2 list   3 update   4 delete   5 -> top
//	student 1 add   2 list   3 -> top
//
// An unknown number prints "Invalid choice." and re-prompts the same menu.
// Anything that is not a number, a storage failure, or running out of
// input ends Run with an error; there is no retry. Deciding what to do
// with that error (log it, exit non-zero) is the caller's job.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/crud-console/internal/controller/student"
	"github.com/aanand-mishra/crud-console/internal/storage"
	"github.com/aanand-mishra/crud-console/internal/view"
)

const (
	mainMenuText = "\n--- Main Menu ---\n" +
		"1. Fetch Employees\n" +
		"2. Product CRUD\n" +
		"3. Student Management\n" +
		"4. Exit\n"

	studentMenuText = "\n1. Add Student\n2. View Students\n3. Back\n"

	invalidChoice = "Invalid choice."
)

// Console owns the input stream, the output stream and the storage
// handle for one session.
type Console struct {
	in       *tokenReader
	out      io.Writer
	store    storage.Storage
	students *student.Controller
}

// New builds a Console reading tokens from in and printing to out.
func New(store storage.Storage, in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       newTokenReader(in),
		out:      out,
		store:    store,
		students: student.New(store, out),
	}
}

// Run loops over the top-level menu until the user picks 4 (returns nil)
// or something fails (returns the error).
func (c *Console) Run(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, mainMenuText)

		choice, err := c.in.nextInt()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			if err := c.listEmployees(ctx); err != nil {
				return err
			}
		case 2:
			if err := c.productMenu(ctx); err != nil {
				return err
			}
		case 3:
			if err := c.studentMenu(ctx); err != nil {
				return err
			}
		case 4:
			slog.Debug("exit requested")
			return nil
		default:
			fmt.Fprintln(c.out, invalidChoice)
		}
	}
}

func (c *Console) listEmployees(ctx context.Context) error {
	employees, err := c.store.GetEmployees(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	return view.Employees(c.out, employees)
}

// studentMenu goes through the student controller rather than storage.
func (c *Console) studentMenu(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, studentMenuText)

		choice, err := c.in.nextInt()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			fmt.Fprint(c.out, "Enter name and course: ")
			name, err := c.in.next()
			if err != nil {
				return err
			}
			course, err := c.in.next()
			if err != nil {
				return err
			}
			if err := c.students.Add(ctx, name, course); err != nil {
				return err
			}
		case 2:
			if err := c.students.ShowAll(ctx); err != nil {
				return err
			}
		case 3:
			return nil
		default:
			fmt.Fprintln(c.out, invalidChoice)
		}
	}
}
