package student

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/crud-console/internal/types"
)

type fakeStudents struct {
	rows    []types.Student
	created []types.Student
	err     error
}

func (f *fakeStudents) CreateStudent(_ context.Context, s types.Student) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, s)
	id := int64(len(f.rows) + 1)
	f.rows = append(f.rows, types.Student{ID: id, Name: s.Name, Course: s.Course})
	return id, nil
}

func (f *fakeStudents) GetStudents(context.Context) ([]types.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestAdd_SendsPlaceholderAndPrintsNothing(t *testing.T) {
	store := &fakeStudents{}
	var out bytes.Buffer

	ctrl := New(store, &out)
	require.NoError(t, ctrl.Add(context.Background(), "Rakesh", "Physics"))

	require.Len(t, store.created, 1)
	assert.Equal(t, types.Student{ID: 0, Name: "Rakesh", Course: "Physics"}, store.created[0])
	assert.Empty(t, out.String())
}

func TestShowAll_PrintsInStorageOrder(t *testing.T) {
	store := &fakeStudents{rows: []types.Student{
		{ID: 2, Name: "Priya", Course: "Maths"},
		{ID: 1, Name: "Rakesh", Course: "Physics"},
	}}
	var out bytes.Buffer

	require.NoError(t, New(store, &out).ShowAll(context.Background()))
	assert.Equal(t, "2 Priya Maths\n1 Rakesh Physics\n", out.String())
}

func TestStorageErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	store := &fakeStudents{err: boom}
	var out bytes.Buffer
	ctrl := New(store, &out)

	assert.ErrorIs(t, ctrl.Add(context.Background(), "a", "b"), boom)
	assert.ErrorIs(t, ctrl.ShowAll(context.Background()), boom)
	assert.Empty(t, out.String())
}
