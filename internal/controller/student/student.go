// Package student is the controller for the Student entity.
//
// It sits between the console and storage the same way an HTTP handler
// sits between a router and storage: it receives already-parsed input,
// calls one storage method, and hands the result to the view. It owns no
// state beyond its two dependencies.
//
//	ctrl := student.New(store, os.Stdout)
//	ctrl.Add(ctx, "Rakesh", "Physics")   // insert, prints nothing
//	ctrl.ShowAll(ctx)                     // prints "1 Rakesh Physics"
package student

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/crud-console/internal/storage"
	"github.com/aanand-mishra/crud-console/internal/types"
	"github.com/aanand-mishra/crud-console/internal/view"
)

// Controller forwards student actions to storage and the view.
type Controller struct {
	storage storage.StudentStorage
	out     io.Writer
}

// New returns a Controller that reads and writes through storage and
// prints listings to out.
func New(storage storage.StudentStorage, out io.Writer) *Controller {
	return &Controller{storage: storage, out: out}
}

// ShowAll prints every student, one per line.
func (c *Controller) ShowAll(ctx context.Context) error {
	slog.Debug("getting all students")

	students, err := c.storage.GetStudents(ctx)
	if err != nil {
		return fmt.Errorf("show students: %w", err)
	}

	return view.Students(c.out, students)
}

// Add creates a student with a placeholder id of 0. Unlike product
// creation it prints no confirmation.
func (c *Controller) Add(ctx context.Context, name, course string) error {
	slog.Debug("creating a student")

	id, err := c.storage.CreateStudent(ctx, types.Student{ID: 0, Name: name, Course: course})
	if err != nil {
		return fmt.Errorf("add student: %w", err)
	}

	slog.Debug("student created", slog.Int64("id", id))
	return nil
}
